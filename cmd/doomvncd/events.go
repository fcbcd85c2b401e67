package main

import (
	"log/slog"

	"github.com/adzm/doomrfb/rfb"
)

// gameEventQueue stands in for the (out-of-scope, per spec.md §1) game
// event queue: the core posts events into it and never inspects what
// comes back out. This demo just logs and drains them on each tic; a
// real engine would feed them into its input state machine instead.
type gameEventQueue struct {
	log   *slog.Logger
	items []rfb.Event
}

func newGameEventQueue(log *slog.Logger) *gameEventQueue {
	return &gameEventQueue{log: log}
}

func (q *gameEventQueue) PostEvent(e rfb.Event) {
	q.items = append(q.items, e)
}

// Drain removes and returns every event posted since the last Drain
// call, in posting order.
func (q *gameEventQueue) Drain() []rfb.Event {
	items := q.items
	q.items = nil
	return items
}

func eventTypeName(t rfb.EventType) string {
	switch t {
	case rfb.EventKeyDown:
		return "key_down"
	case rfb.EventKeyUp:
		return "key_up"
	case rfb.EventMouse:
		return "mouse"
	case rfb.EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}
