package patchbay_test

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/patchbay"
	"github.com/aretw0/patchbay/pkg/adapters/memory"
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/matrix"
	"github.com/aretw0/patchbay/pkg/routing"
)

func demoSession() *memory.Session {
	s := memory.NewSession("demo")
	s.AddRoute(memory.RouteConfig{Name: "Drums", Kind: routing.KindTrack, Order: 0, AudioIn: 2, AudioOut: 2})
	s.AddRoute(memory.RouteConfig{Name: "Master", Kind: routing.KindBus, Order: 1, AudioIn: 2, AudioOut: 2})
	s.Ports().RegisterPort(routing.Port{
		Name:  "system:playback_1",
		Type:  domain.DataTypeAudio,
		Flags: domain.PortIsInput | domain.PortIsPhysical,
	})
	s.Ports().RegisterPort(routing.Port{
		Name:  "system:capture_1",
		Type:  domain.DataTypeAudio,
		Flags: domain.PortIsOutput | domain.PortIsPhysical,
	})
	return s
}

func TestNewRequiresSource(t *testing.T) {
	if _, err := patchbay.New(nil); err == nil {
		t.Fatal("expected an error for a nil source")
	}
}

func TestEngineRebuild(t *testing.T) {
	eng, err := patchbay.New(demoSession())
	if err != nil {
		t.Fatal(err)
	}

	if !eng.Inputs().Empty() || !eng.Outputs().Empty() {
		t.Fatal("lists must start empty before the first rebuild")
	}
	if eng.Generation() != 0 {
		t.Fatalf("generation = %d, want 0", eng.Generation())
	}

	ctx := context.Background()
	eng.Rebuild(ctx)

	if eng.Generation() != 1 {
		t.Fatalf("generation = %d, want 1", eng.Generation())
	}
	if eng.Inputs().Empty() {
		t.Error("input classification is empty after rebuild")
	}
	if eng.Outputs().Empty() {
		t.Error("output classification is empty after rebuild")
	}

	found := false
	for _, g := range eng.Inputs().Groups() {
		if g.Name == matrix.GroupTracks {
			found = true
			if got := g.Bundles()[0].Name(); got != "Drums" {
				t.Errorf("first track bundle = %q, want Drums", got)
			}
		}
	}
	if !found {
		t.Error("no Tracks group on the input side")
	}
}

func TestEngineChangedOncePerDirection(t *testing.T) {
	eng, err := patchbay.New(demoSession())
	if err != nil {
		t.Fatal(err)
	}

	var inputChanges, outputChanges int
	eng.Inputs().Changed.Connect(func() { inputChanges++ })
	eng.Outputs().Changed.Connect(func() { outputChanges++ })

	eng.Rebuild(context.Background())

	if inputChanges != 1 {
		t.Errorf("input Changed fired %d times, want 1", inputChanges)
	}
	if outputChanges != 1 {
		t.Errorf("output Changed fired %d times, want 1", outputChanges)
	}
}

func TestEngineTypeFilter(t *testing.T) {
	s := memory.NewSession("demo")
	s.AddRoute(memory.RouteConfig{Name: "Vox", Kind: routing.KindTrack, AudioIn: 1, AudioOut: 1})

	eng, err := patchbay.New(s, patchbay.WithTypeFilter(domain.DataTypeMIDI))
	if err != nil {
		t.Fatal(err)
	}
	eng.Rebuild(context.Background())

	for _, g := range eng.Inputs().Groups() {
		if g.Name == matrix.GroupTracks {
			t.Error("audio-only route survived the MIDI filter")
		}
	}
}

func TestEngineGatherHooks(t *testing.T) {
	var starts, completes []*domain.GatherEvent
	hooks := domain.GatherHooks{
		OnGatherStart: func(ctx context.Context, ev *domain.GatherEvent) {
			starts = append(starts, ev)
		},
		OnGatherComplete: func(ctx context.Context, ev *domain.GatherEvent) {
			completes = append(completes, ev)
		},
	}

	eng, err := patchbay.New(demoSession(), patchbay.WithGatherHooks(hooks))
	if err != nil {
		t.Fatal(err)
	}
	eng.Rebuild(context.Background())

	if len(starts) != 2 || len(completes) != 2 {
		t.Fatalf("hooks fired start=%d complete=%d, want 2 and 2", len(starts), len(completes))
	}
	if starts[0].Direction != domain.DirInput || starts[1].Direction != domain.DirOutput {
		t.Errorf("start directions = %v, %v", starts[0].Direction, starts[1].Direction)
	}
	for _, ev := range completes {
		if ev.Groups == 0 || ev.Bundles == 0 {
			t.Errorf("complete event for %s carries no counts", ev.Direction)
		}
		if ev.Elapsed < 0 || ev.Elapsed > time.Minute {
			t.Errorf("implausible elapsed time %v", ev.Elapsed)
		}
	}
}

func TestEngineSetSource(t *testing.T) {
	eng, err := patchbay.New(demoSession())
	if err != nil {
		t.Fatal(err)
	}
	eng.Rebuild(context.Background())

	replacement := memory.NewSession("studio")
	replacement.AddRoute(memory.RouteConfig{Name: "Vox", Kind: routing.KindTrack, AudioIn: 1, AudioOut: 1})

	if err := eng.SetSource(nil); err == nil {
		t.Fatal("expected an error for a nil source")
	}
	if err := eng.SetSource(replacement); err != nil {
		t.Fatal(err)
	}

	var changes int
	eng.Inputs().Changed.Connect(func() { changes++ })
	eng.Rebuild(context.Background())

	if changes != 1 {
		t.Errorf("input Changed fired %d times, want 1", changes)
	}

	snap := eng.Snapshot(domain.DirInput)
	if snap.Program != "studio" {
		t.Errorf("program = %q, want studio", snap.Program)
	}
	found := false
	for _, g := range snap.Groups {
		for _, b := range g.Bundles {
			if b.Name == "Vox" {
				found = true
			}
			if b.Name == "Drums" {
				t.Error("old source bundle survived the swap")
			}
		}
	}
	if !found {
		t.Error("new source bundle missing after swap")
	}
}

func TestEngineSnapshot(t *testing.T) {
	eng, err := patchbay.New(demoSession())
	if err != nil {
		t.Fatal(err)
	}
	eng.Rebuild(context.Background())

	snap := eng.Snapshot(domain.DirOutput)
	if snap.Program != "demo" {
		t.Errorf("snapshot program = %q, want demo", snap.Program)
	}
	if snap.Direction != "output" {
		t.Errorf("snapshot direction = %q, want output", snap.Direction)
	}
	if snap.BundleCount() == 0 {
		t.Error("snapshot carries no bundles")
	}
}
