/*
Package domain contains the core domain models for the Patchbay engine.

It defines the vocabulary shared by the classification pipeline and its
adapters: data types, directions, port flags and, centrally, the Bundle.
This package is kept pure and free of external dependencies like I/O or
persistence, following Hexagonal Architecture principles.

# Key Entities

  - Bundle: A named, ordered set of channels, each channel naming one or
    more concrete ports, tagged with a direction.
  - Channel: One named slot within a bundle.
  - DataType: Audio, MIDI, or the Nil wildcard used as an "any type" filter.
  - ChanCount: A per-data-type channel tally.
  - PortFlags: Port metadata bits (physical, hidden, ...).
  - Change: The payload of a bundle's change notifications.
*/
package domain
