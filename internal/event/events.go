package event

import (
	"time"

	"github.com/rithwikbabu/kalshi-tools/internal/domain"
)

// Type defines the type of event.
type Type uint16

const (
	EvBookSnapshot Type = iota + 1
	EvFeedError
)

// Event is the interface for everything delivered on the session inbox.
// Epoch identifies the subscription a feed event belongs to; the book
// store drops events whose epoch no longer matches the active one.
type Event interface {
	GetType() Type
	GetEpoch() uint64
	GetTs() time.Time
}

// BaseEvent contains common fields for all events.
type BaseEvent struct {
	Epoch uint64
	Ts    time.Time
}

func (e BaseEvent) GetEpoch() uint64 { return e.Epoch }
func (e BaseEvent) GetTs() time.Time { return e.Ts }

// BookSnapshotEvent carries a complete replacement book for one ticker.
type BookSnapshotEvent struct {
	BaseEvent
	Snapshot *domain.Snapshot
}

func (e BookSnapshotEvent) GetType() Type { return EvBookSnapshot }

// FeedErrorEvent reports a failed or skipped fetch cycle. The session
// surfaces it as the staleness indicator; the poller retries on the
// next tick regardless.
type FeedErrorEvent struct {
	BaseEvent
	Err error
}

func (e FeedErrorEvent) GetType() Type { return EvFeedError }
