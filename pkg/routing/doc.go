/*
Package routing defines the driven ports (interfaces) the classification
pipeline consumes.

The pipeline never owns the signal graph: routes, processors, IOs, session
bundles and the raw port registry all live behind these interfaces, and a
gather pass queries them synchronously. Everything is passed in explicitly
through Source; there is no ambient global state.

# Key Interfaces

  - Source: The session-like object supplying routes, bundles, plugs,
    surfaces, transport masters and the port engine.
  - IO: One side's port bundle of a route or processor, plus the weak
    back-reference handle records keep.
  - OwnerRef: A lookup that resolves to an IO while its owner is alive,
    and to "no owner" afterwards. It never extends a lifetime.
  - PortEngine: Raw port enumeration and metadata queries.
*/
package routing
