package game

import (
	"errors"
	mathrand "math/rand"
	"sync"
	"time"
)

const (
	StartingCash   = 10000
	PaydayBonus    = 200
	SharesPerAsset = 3
	TurnLimit      = 15

	// Shock magnitudes applied to dividends. Prices react at twice the
	// dividend delta; these are tuned balance constants, not derived values.
	MinorShock          = 100
	MajorShock          = 200
	NoiseShock          = 300
	PriceReactionFactor = 2

	IPOBaseDividend = 200
	IPOBasePrice    = 500

	// Computer policy tuning.
	ComputerReserve        = 300
	SpeculativeDividendMin = 50
	SteadyDividendMin      = 100

	// Pending-event refill threshold.
	QueueLowWatermark = 5

	MaxSeats = 6
)

var (
	ErrGameOver           = errors.New("game already decided")
	ErrAlreadyRolled      = errors.New("already rolled this turn")
	ErrRollFirst          = errors.New("roll the dice before ending the turn")
	ErrTradeWindowClosed  = errors.New("shares can only be sold before rolling")
	ErrAssetNotFound      = errors.New("asset not found")
	ErrNotOnAsset         = errors.New("shares can only be bought on the landed tile")
	ErrAssetUnavailable   = errors.New("asset has no shares for sale")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientShares = errors.New("insufficient shares")
	ErrPlayerEliminated   = errors.New("player has been eliminated")
	ErrSeatCount          = errors.New("game needs between 2 and 6 seats")
)

// Player is never removed from the game; elimination only flips IsAlive.
type Player struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	Color      string `json:"color"`
	Cash       int    `json:"cash"`
	Position   int    `json:"position"`
	IsComputer bool   `json:"is_computer"`
	IsAlive    bool   `json:"is_alive"`
}

// NetWorth is cash plus the market value of every held share.
func (p *Player) NetWorth(board []*Asset) int {
	total := p.Cash
	for _, a := range board {
		total += a.OwnedBy(p.ID) * a.Price
	}
	return total
}

// Rand covers every random draw the engine makes: dice, noise-event
// branching, liquidation tie-breaks and computer buy decisions. Tests
// inject a stub to pin outcomes.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

type lockedRand struct {
	mu   sync.Mutex
	rand *mathrand.Rand
}

func newLockedRand() *lockedRand {
	return &lockedRand{rand: mathrand.New(mathrand.NewSource(time.Now().UnixNano()))}
}

func (r *lockedRand) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

func (r *lockedRand) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

var seatColors = []string{"red", "blue", "green", "yellow", "purple", "orange"}
