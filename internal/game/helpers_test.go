package game

import (
	"io"
	"log/slog"
	"testing"
)

// stubRand replays scripted draws so dice, noise branches and policy
// probabilities are pinned.
type stubRand struct {
	ints   []int
	floats []float64
}

func (r *stubRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	return v % n
}

func (r *stubRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

func newTestGame(t *testing.T, seats []Seat, rng Rand) *Game {
	t.Helper()
	if rng == nil {
		rng = &stubRand{}
	}
	g, err := New(seats, Options{
		Rand:   rng,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	if err != nil {
		t.Fatalf("new game: %v", err)
	}
	return g
}

func twoHumans() []Seat {
	return []Seat{{Name: "A"}, {Name: "B"}}
}

func assertShareInvariant(t *testing.T, g *Game) {
	t.Helper()
	for _, a := range g.board {
		if a.SharesRemaining+a.heldShares() != a.SharesTotal {
			t.Fatalf("asset %q: remaining=%d held=%d total=%d",
				a.Name, a.SharesRemaining, a.heldShares(), a.SharesTotal)
		}
	}
}
