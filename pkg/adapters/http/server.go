// Package http serves classification results over a small JSON API with
// a server-sent-event change stream.
package http

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/aretw0/patchbay"
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/matrix"
	"github.com/aretw0/patchbay/pkg/snapshot"
)

// Engine defines the classification surface the handler serves. The
// root patchbay.Engine satisfies it.
type Engine interface {
	Rebuild(ctx context.Context)
	List(dir domain.Direction) *matrix.PortGroupList
	Snapshot(dir domain.Direction) *snapshot.Snapshot
	Generation() uint64
}

// Server holds the engine and the active event streams.
type Server struct {
	Engine  Engine
	Streams *StreamManager
}

// NewHandler builds the HTTP handler for an engine. It subscribes to
// both classification lists, so changes caused by later rebuilds reach
// every connected /events client.
func NewHandler(engine Engine) http.Handler {
	server := &Server{
		Engine:  engine,
		Streams: NewStreamManager(),
	}

	for _, dir := range []domain.Direction{domain.DirInput, domain.DirOutput} {
		l := engine.List(dir)
		l.Changed.Connect(func() { server.broadcastChange(dir, 0) })
		l.BundleChanged.Connect(func(c domain.Change) { server.broadcastChange(dir, c) })
	}

	r := chi.NewRouter()
	r.Get("/groups", server.GetGroups)
	r.Get("/bundles", server.GetBundles)
	r.Get("/channels", server.GetChannels)
	r.Get("/events", server.SubscribeEvents)
	r.Get("/healthz", server.GetHealth)
	r.Get("/info", server.GetInfo)
	r.Post("/rebuild", server.Rebuild)

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// BundleView flattens one bundle with the group that holds it.
type BundleView struct {
	Group    string             `json:"group"`
	Name     string             `json:"name"`
	Color    string             `json:"color,omitempty"`
	Channels []snapshot.Channel `json:"channels"`
}

// ChannelView flattens one channel with its bundle and group.
type ChannelView struct {
	Group  string   `json:"group"`
	Bundle string   `json:"bundle"`
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Ports  []string `json:"ports"`
}

// GetGroups handles the GET /groups request.
func (s *Server) GetGroups(w http.ResponseWriter, r *http.Request) {
	dir, err := directionParam(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid direction: %v", err), http.StatusBadRequest)
		slog.Warn("GetGroups: invalid direction", "error", err)
		return
	}

	snap := s.Engine.Snapshot(dir)
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		slog.Error("GetGroups response encode failed", "error", err)
	}
}

// GetBundles handles the GET /bundles request.
func (s *Server) GetBundles(w http.ResponseWriter, r *http.Request) {
	dir, err := directionParam(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid direction: %v", err), http.StatusBadRequest)
		slog.Warn("GetBundles: invalid direction", "error", err)
		return
	}

	views := []BundleView{}
	for _, g := range s.Engine.Snapshot(dir).Groups {
		for _, b := range g.Bundles {
			views = append(views, BundleView{
				Group:    g.Name,
				Name:     b.Name,
				Color:    b.Color,
				Channels: b.Channels,
			})
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		slog.Error("GetBundles response encode failed", "error", err)
	}
}

// GetChannels handles the GET /channels request.
func (s *Server) GetChannels(w http.ResponseWriter, r *http.Request) {
	dir, err := directionParam(r)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid direction: %v", err), http.StatusBadRequest)
		slog.Warn("GetChannels: invalid direction", "error", err)
		return
	}

	views := []ChannelView{}
	for _, g := range s.Engine.Snapshot(dir).Groups {
		for _, b := range g.Bundles {
			for _, ch := range b.Channels {
				views = append(views, ChannelView{
					Group:  g.Name,
					Bundle: b.Name,
					Name:   ch.Name,
					Type:   ch.Type,
					Ports:  ch.Ports,
				})
			}
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(views); err != nil {
		slog.Error("GetChannels response encode failed", "error", err)
	}
}

// Rebuild handles the POST /rebuild request: it re-gathers both
// directions and reports the new generation. Connected /events clients
// see the resulting change notifications.
func (s *Server) Rebuild(w http.ResponseWriter, r *http.Request) {
	s.Engine.Rebuild(r.Context())
	slog.Debug("Rebuild requested over HTTP", "generation", s.Engine.Generation())

	resp := map[string]uint64{"generation": s.Engine.Generation()}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("Rebuild response encode failed", "error", err)
	}
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "ok"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	resp := map[string]any{
		"app":        "patchbay-http",
		"version":    strings.TrimSpace(patchbay.Version),
		"program":    s.Engine.Snapshot(domain.DirInput).Program,
		"generation": s.Engine.Generation(),
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// changeEvent is the /events payload.
type changeEvent struct {
	Direction  string `json:"direction"`
	Change     string `json:"change,omitempty"`
	Generation uint64 `json:"generation"`
}

func (s *Server) broadcastChange(dir domain.Direction, c domain.Change) {
	ev := changeEvent{
		Direction:  dir.String(),
		Generation: s.Engine.Generation(),
	}
	if c != 0 {
		ev.Change = c.String()
	}
	if bytes, err := json.Marshal(ev); err == nil {
		s.Streams.Broadcast(string(bytes))
	}
}

// StreamManager handles active SSE connections.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
	}
}

func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			slog.Warn("SSE: client buffer full, dropping message")
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE). An optional
// direction query narrows the stream to one side of the matrix.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		slog.Error("SubscribeEvents: streaming not supported")
		return
	}

	var want string
	if q := r.URL.Query().Get("direction"); q != "" {
		dir, err := domain.ParseDirection(q)
		if err != nil {
			http.Error(w, fmt.Sprintf("Invalid direction: %v", err), http.StatusBadRequest)
			slog.Warn("SubscribeEvents: invalid direction", "error", err)
			return
		}
		want = dir.String()
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			slog.Info("SSE client disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if want != "" {
				var ev changeEvent
				if err := json.Unmarshal([]byte(msg), &ev); err == nil && ev.Direction != want {
					continue
				}
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func directionParam(r *http.Request) (domain.Direction, error) {
	q := r.URL.Query().Get("direction")
	if q == "" {
		return domain.DirInput, nil
	}
	return domain.ParseDirection(q)
}
