/*
Package snapshot projects classification results into a stable,
serializable form and defines how those projections persist.

A Snapshot is a plain data rendering of one gathered PortGroupList:
groups, bundles, channels, ports, nothing live. The Store interface is
the persistence port; adapters provide in-memory and Redis-backed
implementations, and RunStoreContract spells out the behavior they all
share.
*/
package snapshot
