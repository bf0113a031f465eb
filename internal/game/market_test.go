package game

import "testing"

func TestMarketEventShocksSector(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	g.turnCount = 2 // not divisible by 3: minor shock

	g.pending = []MarketEvent{{
		Title:     "Chip Breakthrough",
		Type:      EventMarket,
		Tag:       SectorChips,
		Direction: DirectionUp,
	}}
	g.fireMarketEvent()

	for _, a := range g.board {
		if a.Tag != SectorChips {
			continue
		}
		if a.Dividend != a.PreviousDividend+MinorShock {
			t.Fatalf("%s dividend=%d prev=%d want +%d", a.Name, a.Dividend, a.PreviousDividend, MinorShock)
		}
		if a.Price != a.PreviousPrice+PriceReactionFactor*MinorShock {
			t.Fatalf("%s price=%d prev=%d want +%d", a.Name, a.Price, a.PreviousPrice, PriceReactionFactor*MinorShock)
		}
	}
	if g.lastDownTag != "" {
		t.Fatalf("up shock must not set lastDownTag, got %q", g.lastDownTag)
	}
	if g.current == nil || g.current.EffectTag != SectorChips || g.current.DividendDelta != MinorShock {
		t.Fatalf("applied event not recorded: %+v", g.current)
	}
	if len(g.history) != 1 {
		t.Fatalf("history=%d want 1", len(g.history))
	}
}

func TestMarketEventMajorShockEveryThirdTurn(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	g.turnCount = 3

	g.pending = []MarketEvent{{
		Title:     "Energy Crisis",
		Type:      EventMarket,
		Tag:       SectorEnergy,
		Direction: DirectionDown,
	}}
	g.fireMarketEvent()

	oil := g.board[6] // Oil & Gas Giant, dividend 250
	if oil.Dividend != 250-MajorShock {
		t.Fatalf("dividend=%d want %d", oil.Dividend, 250-MajorShock)
	}
	if oil.Price != IPOBasePrice-PriceReactionFactor*MajorShock {
		t.Fatalf("price=%d want %d", oil.Price, IPOBasePrice-PriceReactionFactor*MajorShock)
	}
	// Power Company fell 200 → 0 and was recycled on the spot.
	if g.board[5].Name != ipoCandidates[0].name {
		t.Fatalf("zeroed asset not recycled: %q", g.board[5].Name)
	}
	if g.lastDownTag != SectorEnergy {
		t.Fatalf("lastDownTag=%q want ENERGY", g.lastDownTag)
	}
}

func TestMarketEventDirectionCoinFlipWhenAbsent(t *testing.T) {
	rng := &stubRand{floats: []float64{0.4}} // < 0.5: down
	g := newTestGame(t, twoHumans(), rng)
	g.turnCount = 2

	g.pending = []MarketEvent{{Title: "AI Ruling", Type: EventMarket, Tag: SectorAI}}
	g.fireMarketEvent()

	if g.current.Direction != DirectionDown {
		t.Fatalf("direction=%q want DOWN", g.current.Direction)
	}
	if g.lastDownTag != SectorAI {
		t.Fatalf("lastDownTag=%q want AI", g.lastDownTag)
	}
}

func TestNoiseEventFizzles(t *testing.T) {
	rng := &stubRand{floats: []float64{0.1}} // < 1/3: no effect
	g := newTestGame(t, twoHumans(), rng)
	g.turnCount = 2

	before := make([]int, len(g.board))
	for i, a := range g.board {
		before[i] = a.Dividend
	}

	g.pending = []MarketEvent{{Title: "Celebrity Gossip", Type: EventNoise}}
	g.fireMarketEvent()

	for i, a := range g.board {
		if a.Dividend != before[i] {
			t.Fatalf("%s dividend changed on fizzled noise", a.Name)
		}
	}
	if g.current.EffectTag != "" {
		t.Fatalf("fizzled noise must not record an effect tag")
	}
}

func TestNoiseEventWeightedShock(t *testing.T) {
	// branch: effect occurs, sector roll 0.2 lands in CRYPTO (0.40),
	// direction roll 0.9 is up.
	rng := &stubRand{floats: []float64{0.9, 0.2, 0.9}}
	g := newTestGame(t, twoHumans(), rng)
	g.turnCount = 2

	g.pending = []MarketEvent{{Title: "Viral Meme", Type: EventNoise}}
	g.fireMarketEvent()

	if g.current.EffectTag != SectorCrypto {
		t.Fatalf("effect tag=%q want CRYPTO", g.current.EffectTag)
	}
	if g.current.DividendDelta != NoiseShock {
		t.Fatalf("delta=%d want %d", g.current.DividendDelta, NoiseShock)
	}
	exchange := g.board[9] // Crypto Exchange, dividend 200
	if exchange.Dividend != 200+NoiseShock {
		t.Fatalf("dividend=%d want %d", exchange.Dividend, 200+NoiseShock)
	}
	if exchange.Price != IPOBasePrice+PriceReactionFactor*NoiseShock {
		t.Fatalf("price=%d want %d", exchange.Price, IPOBasePrice+PriceReactionFactor*NoiseShock)
	}
}

func TestNoiseSectorWeightsCoverEverySector(t *testing.T) {
	tests := []struct {
		roll float64
		want Sector
	}{
		{0.10, SectorCrypto},
		{0.39, SectorCrypto},
		{0.55, SectorMedia},
		{0.75, SectorAI},
		{0.85, SectorChips},
		{0.92, SectorEnergy},
		{0.99, SectorGov},
	}
	for _, tc := range tests {
		g := newTestGame(t, twoHumans(), &stubRand{floats: []float64{tc.roll}})
		if got := g.weightedNoiseSector(); got != tc.want {
			t.Fatalf("roll=%.2f got=%q want %q", tc.roll, got, tc.want)
		}
	}
}

func TestDownShockToZeroBankruptsAndRecycles(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	g.turnCount = 3 // major shock

	memeCoin := g.board[10]
	memeCoin.Dividend = 150
	memeCoin.Holders = []Shareholding{{PlayerID: 0, Shares: 2, PurchaseDividend: 150}}
	memeCoin.SharesRemaining = 1

	g.pending = []MarketEvent{{
		Title:     "Crypto Winter",
		Type:      EventMarket,
		Tag:       SectorCrypto,
		Direction: DirectionDown,
	}}
	g.fireMarketEvent()

	// 150 - 200 clamps to 0, then the recycler relists immediately.
	if memeCoin.Bankrupt {
		t.Fatalf("recycled asset must not stay bankrupt")
	}
	if memeCoin.Dividend != IPOBaseDividend || memeCoin.Price != IPOBasePrice {
		t.Fatalf("relisted at dividend=%d price=%d", memeCoin.Dividend, memeCoin.Price)
	}
	if len(memeCoin.Holders) != 0 || memeCoin.SharesRemaining != memeCoin.SharesTotal {
		t.Fatalf("relisting must clear holders and refill the pool")
	}
	// The whole crypto sector zeroed; board order hands the Crypto
	// Exchange the first candidate and Meme Coin the second.
	if memeCoin.Name != ipoCandidates[1].name {
		t.Fatalf("name=%q want second IPO candidate", memeCoin.Name)
	}
	assertShareInvariant(t, g)
}

func TestPaydayAndBankruptAssetsIgnoreShocks(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	g.turnCount = 2

	payday := g.board[0]
	frozen := g.board[7] // Central Bank, GOV
	frozen.Bankrupt = true
	frozenDividend := frozen.Dividend

	g.pending = []MarketEvent{{
		Title:     "Policy Shift",
		Type:      EventMarket,
		Tag:       SectorGov,
		Direction: DirectionUp,
	}}
	g.fireMarketEvent()

	if payday.Dividend != 0 {
		t.Fatalf("payday tile must never gain a dividend")
	}
	if frozen.Dividend != frozenDividend {
		t.Fatalf("bankrupt asset took a shock")
	}
}

func TestEmptyQueueUsesFallbackRotation(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	g.turnCount = 2

	g.fireMarketEvent()
	first := g.history[0].Title
	g.fireMarketEvent()
	second := g.history[1].Title

	if first != fallbackEvents[0].Title || second != fallbackEvents[1].Title {
		t.Fatalf("fallback rotation broken: %q then %q", first, second)
	}
}
