package game

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Seat describes one player at game creation.
type Seat struct {
	Name     string `json:"name"`
	Computer bool   `json:"computer"`
}

// Options tunes a game. Zero values fall back to production defaults.
type Options struct {
	Source    EventSource
	Rand      Rand
	Logger    *slog.Logger
	StepDelay time.Duration // pacing between computer turn steps
	FetchWait time.Duration // budget for one background refill
}

// Game owns one session's entire state. Every mutation goes through the
// command set below; commands run one at a time under the mutex, so
// state never interleaves mid-transition.
type Game struct {
	mu  sync.Mutex
	id  uuid.UUID
	log *slog.Logger
	rng Rand

	players   []*Player
	board     []*Asset
	active    int
	turnCount int
	dice      int
	hasRolled bool

	pending        []MarketEvent
	current        *MarketEvent
	history        []MarketEvent
	lastDownTag    Sector
	ipoCursor      int
	fallbackCursor int

	winner    int
	winReason string

	source    EventSource
	fetching  bool
	fetchWait time.Duration

	sched     *Scheduler
	stepDelay time.Duration
}

// New creates a game with the fixed board and one token per seat.
func New(seats []Seat, opts Options) (*Game, error) {
	if len(seats) < 2 || len(seats) > MaxSeats {
		return nil, ErrSeatCount
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Rand == nil {
		opts.Rand = newLockedRand()
	}
	if opts.StepDelay <= 0 {
		opts.StepDelay = time.Second
	}
	if opts.FetchWait <= 0 {
		opts.FetchWait = 20 * time.Second
	}

	g := &Game{
		id:        uuid.New(),
		log:       opts.Logger,
		rng:       opts.Rand,
		board:     NewBoard(),
		turnCount: 1,
		winner:    -1,
		source:    opts.Source,
		fetchWait: opts.FetchWait,
		sched:     NewScheduler(),
		stepDelay: opts.StepDelay,
	}
	for i, seat := range seats {
		name := seat.Name
		if name == "" {
			name = "Player " + seatColors[i]
		}
		g.players = append(g.players, &Player{
			ID:         i,
			Name:       name,
			Color:      seatColors[i],
			Cash:       StartingCash,
			IsComputer: seat.Computer,
			IsAlive:    true,
		})
	}

	g.mu.Lock()
	g.requestRefill()
	if g.players[0].IsComputer {
		g.scheduleComputerTurn()
	}
	g.mu.Unlock()
	return g, nil
}

// ID is the session identifier.
func (g *Game) ID() uuid.UUID { return g.id }

// Scheduler exposes the computer-turn queue for the hosting layer.
func (g *Game) Scheduler() *Scheduler { return g.sched }

// Roll throws the die and moves the active player, paying the payday
// bonus on a wrap and settling the landed tile before returning.
func (g *Game) Roll() (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.winner >= 0 {
		return 0, ErrGameOver
	}
	if g.hasRolled {
		return 0, ErrAlreadyRolled
	}

	g.dice = g.rng.Intn(6) + 1
	g.hasRolled = true

	p := g.players[g.active]
	next := p.Position + g.dice
	if next >= len(g.board) {
		p.Cash += PaydayBonus
		g.log.Info("payday bonus", "game", g.id, "player", p.Name, "bonus", PaydayBonus)
	}
	p.Position = next % len(g.board)

	g.settleLanding(p, g.board[p.Position])
	return g.dice, nil
}

// BuyShare buys one share of the tile the active player stands on.
func (g *Game) BuyShare(assetID int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.winner >= 0 {
		return ErrGameOver
	}
	if !g.hasRolled {
		return ErrRollFirst
	}
	a := g.asset(assetID)
	if a == nil {
		return ErrAssetNotFound
	}
	p := g.players[g.active]
	if !p.IsAlive {
		// Landing settlement can eliminate the payer mid-turn.
		return ErrPlayerEliminated
	}
	if g.board[p.Position].ID != assetID {
		return ErrNotOnAsset
	}
	if a.Payday || a.Bankrupt || a.SharesRemaining <= 0 {
		return ErrAssetUnavailable
	}
	if p.Cash < a.Price {
		return ErrInsufficientFunds
	}

	p.Cash -= a.Price
	a.SharesRemaining--
	if h := a.holding(p.ID); h != nil {
		newShares := h.Shares + 1
		avg := float64(h.PurchaseDividend*h.Shares+a.Dividend) / float64(newShares)
		h.Shares = newShares
		h.PurchaseDividend = int(math.Round(avg))
	} else {
		a.Holders = append(a.Holders, Shareholding{
			PlayerID:         p.ID,
			Shares:           1,
			PurchaseDividend: a.Dividend,
		})
	}
	g.log.Info("share bought", "game", g.id, "player", p.Name, "asset", a.Name, "price", a.Price)
	return nil
}

// SellShare sells shares at the current price. Trades happen before the
// roll only.
func (g *Game) SellShare(assetID, shares int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.winner >= 0 {
		return ErrGameOver
	}
	if g.hasRolled {
		return ErrTradeWindowClosed
	}
	if shares <= 0 {
		return ErrInsufficientShares
	}
	a := g.asset(assetID)
	if a == nil {
		return ErrAssetNotFound
	}
	p := g.players[g.active]
	h := a.holding(p.ID)
	if h == nil || h.Shares < shares {
		return ErrInsufficientShares
	}

	p.Cash += shares * a.Price
	h.Shares -= shares
	a.SharesRemaining += shares
	if a.SharesRemaining > a.SharesTotal {
		a.SharesRemaining = a.SharesTotal
	}
	if h.Shares == 0 {
		a.removeHolder(p.ID)
	}
	g.log.Info("shares sold", "game", g.id, "player", p.Name, "asset", a.Name, "shares", shares, "price", a.Price)
	return nil
}

// EndTurn hands control to the next alive seat. Once per full cycle it
// advances the turn counter and fires the market event engine, then the
// win conditions are evaluated.
func (g *Game) EndTurn() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.winner >= 0 {
		return ErrGameOver
	}
	if !g.hasRolled {
		return ErrRollFirst
	}

	next := g.nextAliveIndex(g.active)
	if next <= g.active {
		g.turnCount++
		g.fireMarketEvent()
	}

	g.checkGameEnd()
	if g.winner >= 0 {
		return nil
	}

	g.active = next
	g.hasRolled = false
	g.dice = 0
	if g.players[next].IsComputer {
		g.scheduleComputerTurn()
	}
	return nil
}

func (g *Game) asset(id int) *Asset {
	for _, a := range g.board {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (g *Game) nextAliveIndex(from int) int {
	idx := from
	for {
		idx = (idx + 1) % len(g.players)
		if g.players[idx].IsAlive || idx == from {
			return idx
		}
	}
}

// settleLanding charges the landing player the tile's dividend and pays
// every shareholder per share held. The payer collects on their own
// shares too, so their net change is -D + owned*D.
func (g *Game) settleLanding(payer *Player, tile *Asset) {
	if tile.Payday || tile.Bankrupt || tile.Dividend <= 0 {
		return
	}
	dividend := tile.Dividend
	if payer.Cash < dividend {
		g.liquidate(payer, dividend)
		if !payer.IsAlive {
			// The obligation dies with the player; nothing is paid out.
			return
		}
	}
	for _, p := range g.players {
		owned := tile.OwnedBy(p.ID)
		delta := owned * dividend
		if p.ID == payer.ID {
			delta -= dividend
		}
		if delta != 0 {
			p.Cash += delta
		}
	}
	g.log.Info("dividend settled", "game", g.id, "payer", payer.Name, "asset", tile.Name, "dividend", dividend)
}

func (g *Game) checkGameEnd() {
	alive := make([]*Player, 0, len(g.players))
	for _, p := range g.players {
		if p.IsAlive {
			alive = append(alive, p)
		}
	}
	if len(alive) == 1 {
		g.winner = alive[0].ID
		g.winReason = "Last Survivor"
		g.log.Info("game over", "game", g.id, "winner", alive[0].Name, "reason", g.winReason)
		return
	}
	if g.turnCount >= TurnLimit {
		// Ties break to the earliest seat: only a strictly greater net
		// worth displaces the leader.
		best := g.players[0]
		bestWorth := best.NetWorth(g.board)
		for _, p := range g.players[1:] {
			if worth := p.NetWorth(g.board); worth > bestWorth {
				best, bestWorth = p, worth
			}
		}
		g.winner = best.ID
		g.winReason = "Net Worth Leader"
		g.log.Info("game over", "game", g.id, "winner", best.Name, "reason", g.winReason, "net_worth", bestWorth)
	}
}

// scheduleComputerTurn queues the roll step for the active computer
// seat. Called with g.mu held.
func (g *Game) scheduleComputerTurn() {
	seat := g.active
	g.sched.Push(g.stepDelay, func() { g.computerRoll(seat) })
}

func (g *Game) computerRoll(seat int) {
	if !g.seatCurrent(seat) {
		return
	}
	if _, err := g.Roll(); err != nil {
		return
	}
	g.sched.Push(g.stepDelay, func() { g.computerAct(seat) })
}

func (g *Game) computerAct(seat int) {
	g.mu.Lock()
	buy := false
	var assetID int
	if g.winner < 0 && g.active == seat {
		p := g.players[seat]
		tile := g.board[p.Position]
		assetID = tile.ID
		buy = ShouldBuy(p, tile, g.rng)
	}
	g.mu.Unlock()

	if buy {
		if err := g.BuyShare(assetID); err != nil {
			g.log.Debug("computer buy rejected", "game", g.id, "asset", assetID, "err", err)
		}
	}
	g.sched.Push(g.stepDelay, func() { g.computerEnd(seat) })
}

func (g *Game) computerEnd(seat int) {
	if !g.seatCurrent(seat) {
		return
	}
	_ = g.EndTurn()
}

func (g *Game) seatCurrent(seat int) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.winner < 0 && g.active == seat
}

// EnqueueEvents appends collaborator events, preserving arrival order.
func (g *Game) EnqueueEvents(events []MarketEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, ev := range events {
		g.pending = append(g.pending, NormalizeEvent(ev))
	}
}

// requestRefill starts at most one background fetch. Called with g.mu
// held; the fetch itself runs outside the lock and never blocks a turn.
func (g *Game) requestRefill() {
	if g.source == nil || g.fetching {
		return
	}
	g.fetching = true
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), g.fetchWait)
		defer cancel()
		events, err := g.source.Fetch(ctx, 2*QueueLowWatermark)

		g.mu.Lock()
		g.fetching = false
		if err != nil {
			g.mu.Unlock()
			g.log.Warn("news refill failed", "game", g.id, "err", err)
			return
		}
		for _, ev := range events {
			g.pending = append(g.pending, NormalizeEvent(ev))
		}
		g.mu.Unlock()
	}()
}
