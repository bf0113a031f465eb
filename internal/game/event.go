package game

import (
	"context"

	"github.com/google/uuid"
)

type EventType string

const (
	EventMarket EventType = "MARKET"
	EventNoise  EventType = "NOISE"
)

type Direction string

const (
	DirectionUp   Direction = "UP"
	DirectionDown Direction = "DOWN"
)

// MarketEvent is a classified news item produced by the news
// collaborator. Tag and Direction may be empty; the engine assigns them
// when it applies the event. EffectTag and the delta fields are filled
// in by the engine after application for display.
type MarketEvent struct {
	ID          string    `json:"id"`
	SourceTitle string    `json:"source_title,omitempty"`
	Title       string    `json:"title"`
	Reason      string    `json:"reason,omitempty"`
	Type        EventType `json:"type"`
	Tag         Sector    `json:"tag,omitempty"`
	Direction   Direction `json:"direction,omitempty"`

	EffectTag     Sector `json:"effect_tag,omitempty"`
	DividendDelta int    `json:"dividend_delta,omitempty"`
	PriceDelta    int    `json:"price_delta,omitempty"`
}

// EventSource is the news collaborator boundary. Fetch may block on
// network and LLM calls; the engine only invokes it from a background
// refill goroutine and never waits on it during a turn.
type EventSource interface {
	Fetch(ctx context.Context, limit int) ([]MarketEvent, error)
}

// NormalizeEvent coerces a collaborator payload into a safe event.
// Unknown types and tagless MARKET events degrade to NOISE; unknown
// tags and directions are cleared rather than rejected.
func NormalizeEvent(ev MarketEvent) MarketEvent {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	switch ev.Type {
	case EventMarket, EventNoise:
	default:
		ev.Type = EventNoise
	}
	if ev.Tag != "" {
		if tag, ok := ParseSector(string(ev.Tag)); ok {
			ev.Tag = tag
		} else {
			ev.Tag = ""
		}
	}
	if ev.Type == EventMarket && ev.Tag == "" {
		ev.Type = EventNoise
	}
	switch ev.Direction {
	case DirectionUp, DirectionDown:
	default:
		ev.Direction = ""
	}
	if ev.Title == "" {
		ev.Title = ev.SourceTitle
	}
	if ev.Title == "" {
		ev.Title = "Market Murmurs"
	}
	return ev
}

// fallbackEvents is served, in rotation, whenever the queue runs dry and
// the collaborator has nothing to offer. Kept deterministic so an
// offline game still plays the same rules.
var fallbackEvents = []MarketEvent{
	{Title: "Wire Silence", Reason: "No fresh headlines reached the trading floor.", Type: EventNoise},
	{Title: "Rumor Mill Overdrive", Reason: "Traders swap unverified gossip between desks.", Type: EventNoise},
	{Title: "Regulators Hold Steady", Reason: "A quiet policy day keeps government desks busy anyway.", Type: EventMarket, Tag: SectorGov, Direction: DirectionUp},
	{Title: "Exchange Glitch Spooks Desks", Reason: "A brief outage rattles the crypto tickers.", Type: EventMarket, Tag: SectorCrypto, Direction: DirectionDown},
}

// FallbackEvents returns a copy of the deterministic offline feed.
func FallbackEvents() []MarketEvent {
	out := make([]MarketEvent, len(fallbackEvents))
	copy(out, fallbackEvents)
	for i := range out {
		out[i] = NormalizeEvent(out[i])
	}
	return out
}
