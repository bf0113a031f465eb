package news

import (
	"testing"

	"newsopoly/internal/game"
)

func TestParseClassifiedStripsFences(t *testing.T) {
	text := "```json\n[{\"source_title\":\"Raw\",\"title\":\"Chips Up\",\"reason\":\"Fabs hum.\",\"type\":\"MARKET\",\"tag\":\"CHIPS\",\"direction\":\"UP\"}]\n```"

	events, err := ParseClassified(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	ev := events[0]
	if ev.Type != game.EventMarket || ev.Tag != game.SectorChips || ev.Direction != game.DirectionUp {
		t.Fatalf("event not preserved: %+v", ev)
	}
	if ev.ID == "" {
		t.Fatalf("event left without an ID")
	}
}

func TestParseClassifiedNormalizesModelOutput(t *testing.T) {
	text := `[
		{"title":"Weird", "type":"BULLETIN", "tag":"HOUSING", "direction":"FLAT"},
		{"source_title":"Only Source", "type":"NOISE"}
	]`

	events, err := ParseClassified(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if events[0].Type != game.EventNoise || events[0].Tag != "" || events[0].Direction != "" {
		t.Fatalf("bad payload not coerced: %+v", events[0])
	}
	if events[1].Title != "Only Source" {
		t.Fatalf("title not backfilled from the source headline: %q", events[1].Title)
	}
}

func TestParseClassifiedRejectsGarbage(t *testing.T) {
	if _, err := ParseClassified("the market did things today"); err == nil {
		t.Fatalf("expected a decode error")
	}
}
