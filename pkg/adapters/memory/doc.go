/*
Package memory provides an in-process routing source: a mutable session
whose routes, bundles, ports, and peripherals live entirely in memory.

A Session implements routing.Source, so it can feed gather passes
directly. Mutators cover the things a running program would do to its
routing graph: add and remove routes, hang processors and sidechains off
them, register engine ports, declare IO plugs, surfaces, and transport
masters, and wire the special ports. Owner references handed out by
session IOs resolve through the session's liveness registry, so a
destroyed route's bundles correctly report no owner.
*/
package memory
