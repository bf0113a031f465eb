package game

// noiseNoEffectOdds is the share of noise events that fizzle entirely.
const noiseNoEffectOdds = 1.0 / 3.0

// noiseSectorWeights is the fixed distribution used when a noise event
// does hit; tuned for chaos in the speculative sectors.
var noiseSectorWeights = []struct {
	sector Sector
	weight float64
}{
	{SectorCrypto, 0.40},
	{SectorMedia, 0.30},
	{SectorAI, 0.10},
	{SectorChips, 0.10},
	{SectorEnergy, 0.05},
	{SectorGov, 0.05},
}

// fireMarketEvent consumes the next pending event, shocks the board and
// recycles anything driven bankrupt. Runs once per full player cycle.
// Called with g.mu held.
func (g *Game) fireMarketEvent() {
	ev, ok := g.dequeueEvent()
	if !ok {
		ev = g.nextFallbackEvent()
	}

	applied := g.applyEvent(ev)
	g.current = &applied
	g.history = append(g.history, applied)
	g.recycleBankruptAssets()

	if len(g.pending) < QueueLowWatermark {
		g.requestRefill()
	}
}

func (g *Game) dequeueEvent() (MarketEvent, bool) {
	if len(g.pending) == 0 {
		// One shot at a refill for the next cycle; this cycle proceeds
		// with the fallback feed rather than waiting.
		g.requestRefill()
		return MarketEvent{}, false
	}
	ev := g.pending[0]
	g.pending = g.pending[1:]
	return ev, true
}

func (g *Game) nextFallbackEvent() MarketEvent {
	ev := fallbackEvents[g.fallbackCursor%len(fallbackEvents)]
	g.fallbackCursor++
	return NormalizeEvent(ev)
}

// applyEvent resolves an event into a sector shock. It is a pure
// function of the board, the event, the turn counter and the injected
// randomness; the returned copy carries the applied effect for display.
func (g *Game) applyEvent(ev MarketEvent) MarketEvent {
	magnitude := MinorShock
	if g.turnCount%3 == 0 {
		magnitude = MajorShock
	}

	var tag Sector
	var dir Direction
	switch ev.Type {
	case EventMarket:
		tag = ev.Tag
		dir = ev.Direction
		if dir == "" {
			dir = g.coinFlipDirection()
		}
	default: // noise
		if g.rng.Float64() < noiseNoEffectOdds {
			g.log.Info("noise event fizzled", "game", g.id, "title", ev.Title)
			return ev
		}
		tag = g.weightedNoiseSector()
		dir = g.coinFlipDirection()
		magnitude = NoiseShock
	}

	delta := magnitude
	if dir == DirectionDown {
		delta = -magnitude
	}

	for _, a := range g.board {
		if a.Payday || a.Bankrupt || a.Tag != tag {
			continue
		}
		a.PreviousDividend = a.Dividend
		a.PreviousPrice = a.Price
		a.Dividend = clampMin0(a.Dividend + delta)
		a.Price = clampMin0(a.Price + PriceReactionFactor*delta)
		if a.Dividend == 0 {
			// Bankrupt implies worthless.
			a.Price = 0
			a.Bankrupt = true
		}
	}

	if dir == DirectionDown {
		g.lastDownTag = tag
	}

	ev.EffectTag = tag
	ev.Direction = dir
	ev.DividendDelta = delta
	ev.PriceDelta = PriceReactionFactor * delta
	g.log.Info("market shock applied", "game", g.id, "title", ev.Title, "sector", tag, "delta", delta)
	return ev
}

func (g *Game) coinFlipDirection() Direction {
	if g.rng.Float64() < 0.5 {
		return DirectionDown
	}
	return DirectionUp
}

func (g *Game) weightedNoiseSector() Sector {
	roll := g.rng.Float64()
	acc := 0.0
	for _, w := range noiseSectorWeights {
		acc += w.weight
		if roll < acc {
			return w.sector
		}
	}
	return noiseSectorWeights[len(noiseSectorWeights)-1].sector
}

func clampMin0(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
