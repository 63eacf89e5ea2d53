package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/patchbay"
	"github.com/aretw0/patchbay/pkg/adapters/memory"
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/matrix"
	"github.com/aretw0/patchbay/pkg/routing"
	"github.com/aretw0/patchbay/pkg/snapshot"
)

func testHandler(t *testing.T) (http.Handler, *patchbay.Engine) {
	t.Helper()

	s := memory.NewSession("demo")
	s.AddRoute(memory.RouteConfig{
		Name:     "Drums",
		Kind:     routing.KindTrack,
		Color:    "#b91c1c",
		AudioIn:  2,
		AudioOut: 2,
	})
	s.Ports().RegisterPort(routing.Port{
		Name:  "system:playback_1",
		Type:  domain.DataTypeAudio,
		Flags: domain.PortIsInput | domain.PortIsPhysical,
	})

	eng, err := patchbay.New(s)
	if err != nil {
		t.Fatal(err)
	}
	return NewHandler(eng), eng
}

func TestGetGroups(t *testing.T) {
	handler, eng := testHandler(t)
	eng.Rebuild(context.Background())

	req := httptest.NewRequest("GET", "/groups?direction=input", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}
	var snap snapshot.Snapshot
	if err := json.NewDecoder(w.Body).Decode(&snap); err != nil {
		t.Fatal(err)
	}
	if snap.Program != "demo" {
		t.Errorf("program = %q, want demo", snap.Program)
	}

	var names []string
	for _, g := range snap.Groups {
		names = append(names, g.Name)
	}
	want := []string{matrix.GroupTracks, matrix.ProgramGroupName("demo"), matrix.GroupHardware}
	if len(names) != len(want) {
		t.Fatalf("groups = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("groups = %v, want %v", names, want)
		}
	}
}

func TestGetGroupsRejectsBadDirection(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/groups?direction=sideways", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}

func TestGetBundles(t *testing.T) {
	handler, eng := testHandler(t)
	eng.Rebuild(context.Background())

	req := httptest.NewRequest("GET", "/bundles?direction=input", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}
	var views []BundleView
	if err := json.NewDecoder(w.Body).Decode(&views); err != nil {
		t.Fatal(err)
	}

	var drums *BundleView
	for i := range views {
		if views[i].Name == "Drums" {
			drums = &views[i]
		}
	}
	if drums == nil {
		t.Fatalf("no Drums bundle in %+v", views)
	}
	if drums.Group != matrix.GroupTracks {
		t.Errorf("Drums group = %q, want %q", drums.Group, matrix.GroupTracks)
	}
	if drums.Color != "#b91c1c" {
		t.Errorf("Drums color = %q", drums.Color)
	}
	if len(drums.Channels) != 2 {
		t.Errorf("Drums channels = %d, want 2", len(drums.Channels))
	}
}

func TestGetChannels(t *testing.T) {
	handler, eng := testHandler(t)
	eng.Rebuild(context.Background())

	req := httptest.NewRequest("GET", "/channels?direction=input", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}
	var views []ChannelView
	if err := json.NewDecoder(w.Body).Decode(&views); err != nil {
		t.Fatal(err)
	}

	found := false
	for _, v := range views {
		if v.Bundle == "Drums" && v.Name == "audio_in 1" {
			found = true
			if len(v.Ports) != 1 || v.Ports[0] != "demo:Drums/audio_in 1" {
				t.Errorf("ports = %v", v.Ports)
			}
			if v.Type != "audio" {
				t.Errorf("type = %q, want audio", v.Type)
			}
		}
	}
	if !found {
		t.Error("no row for the first Drums channel")
	}
}

func TestRebuildEndpoint(t *testing.T) {
	handler, _ := testHandler(t)

	for want := uint64(1); want <= 2; want++ {
		req := httptest.NewRequest("POST", "/rebuild", nil)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200 OK, got %d", w.Code)
		}
		var resp map[string]uint64
		if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
			t.Fatal(err)
		}
		if resp["generation"] != want {
			t.Errorf("generation = %d, want %d", resp["generation"], want)
		}
	}
}

func TestGetHealth(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/healthz", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 OK, got %d", w.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["status"] != "ok" {
		t.Errorf("status = %q", resp["status"])
	}
}

func TestGetInfo(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/info", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	var resp map[string]any
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if resp["app"] != "patchbay-http" {
		t.Errorf("app = %v", resp["app"])
	}
	if resp["program"] != "demo" {
		t.Errorf("program = %v", resp["program"])
	}
	if resp["version"] == "" {
		t.Error("version missing")
	}
}

func TestSubscribeEvents(t *testing.T) {
	handler, _ := testHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/events", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(wSub, reqSub)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond) // Wait for subscription to register

	reqReb := httptest.NewRequest("POST", "/rebuild", nil)
	wReb := httptest.NewRecorder()
	handler.ServeHTTP(wReb, reqReb)
	if wReb.Code != http.StatusOK {
		t.Fatalf("Rebuild failed: %d %s", wReb.Code, wReb.Body.String())
	}

	time.Sleep(50 * time.Millisecond) // Let the stream drain
	cancel()
	<-done

	out := wSub.Body.String()
	if !strings.Contains(out, "event: ping") {
		t.Error("Expected initial ping")
	}
	if !strings.Contains(out, `"direction":"input"`) {
		t.Errorf("Expected input change event, got %q", out)
	}
	if !strings.Contains(out, `"direction":"output"`) {
		t.Errorf("Expected output change event, got %q", out)
	}
}

func TestSubscribeEventsDirectionFilter(t *testing.T) {
	handler, _ := testHandler(t)

	ctx, cancel := context.WithCancel(context.Background())
	wSub := httptest.NewRecorder()
	reqSub := httptest.NewRequest("GET", "/events?direction=output", nil).WithContext(ctx)

	done := make(chan struct{})
	go func() {
		handler.ServeHTTP(wSub, reqSub)
		close(done)
	}()

	time.Sleep(100 * time.Millisecond)

	reqReb := httptest.NewRequest("POST", "/rebuild", nil)
	handler.ServeHTTP(httptest.NewRecorder(), reqReb)

	time.Sleep(50 * time.Millisecond)
	cancel()
	<-done

	out := wSub.Body.String()
	if !strings.Contains(out, `"direction":"output"`) {
		t.Errorf("Expected output change event, got %q", out)
	}
	if strings.Contains(out, `"direction":"input"`) {
		t.Errorf("Input events must be filtered out, got %q", out)
	}
}

func TestSubscribeEventsRejectsBadDirection(t *testing.T) {
	handler, _ := testHandler(t)

	req := httptest.NewRequest("GET", "/events?direction=bogus", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
}
