/*
Package patchbay is a port-bundle aggregation and classification engine for
audio routing software, modeled after the patchbays of hardware studios.

It takes the raw routing state of a program (routes, processors, engine
ports, peripherals) and organizes every connectable endpoint into named
bundles inside a fixed set of display groups: Busses, Tracks, Sidechains,
I/O Pre, I/O Post, the program's own miscellaneous group, External, and
Hardware.

# Concept

The engine never talks to audio hardware. It reads a routing.Source (your
program's session, or an in-memory one) and produces one PortGroupList per
transfer direction. Consumers render those lists, subscribe to their change
signals, and re-read when told to. This keeps the classification logic
embeddable in any interface: a connection matrix UI, a CLI, an HTTP
service, or an agent toolchain.

# Key Features

  - Deterministic Classification: the same source state always yields the
    same groups, bundles, and ordering.
  - Structural Deduplication: bundles exposing the same port set collapse
    to the first occurrence, with an explicit subsumption pass for the
    hardware group.
  - Batched Signals: a whole gather pass announces itself as a single
    change, never one event per touched bundle.
  - Weak Ownership: bundles point back to the IO that produced them
    without keeping destroyed routes alive.

# Usage

Build a session, hand it to New, and rebuild whenever your routing state
changes.

	package main

	import (
		"context"
		"fmt"
		"log"

		"github.com/aretw0/patchbay"
		"github.com/aretw0/patchbay/pkg/adapters/memory"
		"github.com/aretw0/patchbay/pkg/routing"
	)

	func main() {
		// 1. Describe your routing state
		session := memory.NewSession("myapp")
		session.AddRoute(memory.RouteConfig{
			Name: "Drums", Kind: routing.KindTrack, AudioIn: 2, AudioOut: 2,
		})

		// 2. Initialize the engine
		eng, err := patchbay.New(session)
		if err != nil {
			log.Fatal(err)
		}

		// 3. Classify and render
		eng.Rebuild(context.Background())
		for _, group := range eng.Inputs().Groups() {
			fmt.Println(group.Name, group.Size())
		}
	}
*/
package patchbay
