package domain

import (
	"context"
	"time"
)

// GatherEvent describes one classification pass over a routing source.
type GatherEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	Direction Direction     `json:"direction"`
	Type      DataType      `json:"type"`
	Groups    int           `json:"groups"`
	Bundles   int           `json:"bundles"`
	Elapsed   time.Duration `json:"elapsed"`
}

// GatherHooks defines callbacks for engine observability. Hooks run
// synchronously on the gathering goroutine, so keep them cheap; metrics
// counters and log lines are the intended use.
type GatherHooks struct {
	OnGatherStart    func(context.Context, *GatherEvent)
	OnGatherComplete func(context.Context, *GatherEvent)
}
