package patchbay

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/patchbay/internal/logging"
	"github.com/aretw0/patchbay/pkg/domain"
	"github.com/aretw0/patchbay/pkg/matrix"
	"github.com/aretw0/patchbay/pkg/routing"
	"github.com/aretw0/patchbay/pkg/snapshot"
)

// Engine is the high-level entry point for the patchbay library.
// It owns one classification per transfer direction and rebuilds both
// from a routing source on demand.
type Engine struct {
	source            routing.Source
	filter            domain.DataType
	allowDuplicates   bool
	useSessionBundles bool
	hooks             domain.GatherHooks
	logger            *slog.Logger
	Name              string

	inputs     *matrix.PortGroupList
	outputs    *matrix.PortGroupList
	generation uint64
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithTypeFilter restricts gathering to one data type. The default
// admits everything.
func WithTypeFilter(t domain.DataType) Option {
	return func(e *Engine) {
		e.filter = t
	}
}

// WithAllowDuplicates keeps structurally identical bundles instead of
// suppressing them.
func WithAllowDuplicates() Option {
	return func(e *Engine) {
		e.allowDuplicates = true
	}
}

// WithSessionBundles admits non-user session bundles into the Hardware
// group.
func WithSessionBundles() Option {
	return func(e *Engine) {
		e.useSessionBundles = true
	}
}

// WithGatherHooks registers observability hooks around gather passes.
func WithGatherHooks(hooks domain.GatherHooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// New initializes an Engine around a routing source. The lists start
// empty; call Rebuild to run the first classification.
func New(source routing.Source, opts ...Option) (*Engine, error) {
	if source == nil {
		return nil, fmt.Errorf("a routing source is required")
	}

	eng := &Engine{
		source:  source,
		filter:  domain.DataTypeNil,
		inputs:  matrix.NewPortGroupList(),
		outputs: matrix.NewPortGroupList(),
	}
	for _, opt := range opts {
		opt(eng)
	}

	// Ensure logger is initialized so hooks and adapters can rely on it.
	if eng.logger == nil {
		eng.logger = logging.NewNop()
	}

	eng.Name = source.ProgramName()
	if eng.Name != "" {
		eng.logger = eng.logger.With("program", eng.Name)
	}

	return eng, nil
}

// Rebuild re-gathers both directions from the source and advances the
// generation. Each direction's list announces exactly one change.
func (e *Engine) Rebuild(ctx context.Context) {
	e.generation++
	e.rebuild(ctx, domain.DirInput, e.inputs)
	e.rebuild(ctx, domain.DirOutput, e.outputs)
	e.logger.Debug("classifications rebuilt", "generation", e.generation)
}

func (e *Engine) rebuild(ctx context.Context, dir domain.Direction, l *matrix.PortGroupList) {
	started := time.Now()
	if e.hooks.OnGatherStart != nil {
		e.hooks.OnGatherStart(ctx, &domain.GatherEvent{
			Timestamp: started,
			Direction: dir,
			Type:      e.filter,
		})
	}

	l.Gather(e.source, e.filter, dir, e.allowDuplicates, e.useSessionBundles)

	if e.hooks.OnGatherComplete != nil {
		e.hooks.OnGatherComplete(ctx, &domain.GatherEvent{
			Timestamp: time.Now(),
			Direction: dir,
			Type:      e.filter,
			Groups:    l.Size(),
			Bundles:   len(l.Bundles()),
			Elapsed:   time.Since(started),
		})
	}
	e.logger.Debug("gather pass complete",
		"direction", dir.String(),
		"groups", l.Size(),
		"bundles", len(l.Bundles()),
	)
}

// Inputs returns the classification of the input side.
func (e *Engine) Inputs() *matrix.PortGroupList { return e.inputs }

// Outputs returns the classification of the output side.
func (e *Engine) Outputs() *matrix.PortGroupList { return e.outputs }

// List returns the classification for one direction.
func (e *Engine) List(dir domain.Direction) *matrix.PortGroupList {
	if dir == domain.DirOutput {
		return e.outputs
	}
	return e.inputs
}

// Snapshot projects the classification for one direction into its
// serializable form.
func (e *Engine) Snapshot(dir domain.Direction) *snapshot.Snapshot {
	return snapshot.Capture(e.Name, dir, e.List(dir))
}

// Generation counts rebuild passes. It starts at zero and advances at
// the top of each Rebuild, so hooks fired during a pass already see
// the generation they belong to.
func (e *Engine) Generation() uint64 { return e.generation }

// Source returns the routing source the engine gathers from.
func (e *Engine) Source() routing.Source { return e.source }

// SetSource swaps the routing source used by subsequent rebuilds. The
// classification lists persist, so connected observers keep their
// subscriptions across the swap.
func (e *Engine) SetSource(source routing.Source) error {
	if source == nil {
		return fmt.Errorf("a routing source is required")
	}
	e.source = source
	e.Name = source.ProgramName()
	return nil
}
