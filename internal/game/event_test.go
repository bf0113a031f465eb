package game

import "testing"

func TestNormalizeEventCoercesUnknowns(t *testing.T) {
	tests := []struct {
		name string
		in   MarketEvent
		want MarketEvent
	}{
		{
			name: "unknown type degrades to noise",
			in:   MarketEvent{Title: "x", Type: "BREAKING", Tag: SectorAI},
			want: MarketEvent{Title: "x", Type: EventNoise, Tag: SectorAI},
		},
		{
			name: "tagless market degrades to noise",
			in:   MarketEvent{Title: "x", Type: EventMarket},
			want: MarketEvent{Title: "x", Type: EventNoise},
		},
		{
			name: "unknown tag cleared, market degrades",
			in:   MarketEvent{Title: "x", Type: EventMarket, Tag: "REAL_ESTATE"},
			want: MarketEvent{Title: "x", Type: EventNoise, Tag: ""},
		},
		{
			name: "unknown direction cleared",
			in:   MarketEvent{Title: "x", Type: EventMarket, Tag: SectorChips, Direction: "SIDEWAYS"},
			want: MarketEvent{Title: "x", Type: EventMarket, Tag: SectorChips, Direction: ""},
		},
		{
			name: "well-formed event untouched",
			in:   MarketEvent{Title: "x", Type: EventMarket, Tag: SectorGov, Direction: DirectionDown},
			want: MarketEvent{Title: "x", Type: EventMarket, Tag: SectorGov, Direction: DirectionDown},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := NormalizeEvent(tc.in)
			if got.ID == "" {
				t.Fatalf("normalization left the ID empty")
			}
			if got.Type != tc.want.Type || got.Tag != tc.want.Tag || got.Direction != tc.want.Direction {
				t.Fatalf("got type=%s tag=%s dir=%s, want type=%s tag=%s dir=%s",
					got.Type, got.Tag, got.Direction, tc.want.Type, tc.want.Tag, tc.want.Direction)
			}
		})
	}
}

func TestNormalizeEventFillsTitle(t *testing.T) {
	got := NormalizeEvent(MarketEvent{SourceTitle: "Markets wobble", Type: EventNoise})
	if got.Title != "Markets wobble" {
		t.Fatalf("title=%q want the source headline", got.Title)
	}

	got = NormalizeEvent(MarketEvent{Type: EventNoise})
	if got.Title == "" {
		t.Fatalf("blank event left without a title")
	}
}

func TestNormalizeEventKeepsCallerID(t *testing.T) {
	got := NormalizeEvent(MarketEvent{ID: "abc", Title: "x", Type: EventNoise})
	if got.ID != "abc" {
		t.Fatalf("ID=%q want abc", got.ID)
	}
}

func TestFallbackEventsAreSafeCopies(t *testing.T) {
	a := FallbackEvents()
	b := FallbackEvents()
	if len(a) == 0 {
		t.Fatalf("no fallback events")
	}
	a[0].Title = "mutated"
	if b[0].Title == "mutated" {
		t.Fatalf("FallbackEvents shares backing storage")
	}
	for i, ev := range b {
		if ev.Type != EventMarket && ev.Type != EventNoise {
			t.Fatalf("event %d has type %q", i, ev.Type)
		}
		if ev.Type == EventMarket && ev.Tag == "" {
			t.Fatalf("event %d is a tagless market event", i)
		}
	}
}
