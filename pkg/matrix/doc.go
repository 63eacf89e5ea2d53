/*
Package matrix implements the port-bundle aggregation and classification
engine: the containers that hold classified bundles and the gather pass
that fills them from a routing source.

A PortGroup is a named, deduplicated bucket of bundles. A PortGroupList
is one complete classification result for a transfer direction and data
type filter, built by Gather along the fixed group order: Busses, Tracks,
Sidechains, I/O Pre, I/O Post, the program's Misc group, External, and
Hardware. Groups and bundles carry change signals; the list coalesces
them while signals are suspended.

Everything in this package runs on a single goroutine, conventionally
the one that owns the presentation layer. Nothing blocks, nothing locks,
and a gather pass runs synchronously to completion.
*/
package matrix
