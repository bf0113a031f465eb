package game

import "testing"

func grantShares(t *testing.T, g *Game, playerID, assetID, shares int) *Asset {
	t.Helper()
	a := g.asset(assetID)
	if a == nil {
		t.Fatalf("no asset %d", assetID)
	}
	if a.SharesRemaining < shares {
		t.Fatalf("asset %q has only %d shares in the pool", a.Name, a.SharesRemaining)
	}
	a.Holders = append(a.Holders, Shareholding{PlayerID: playerID, Shares: shares, PurchaseDividend: a.Dividend})
	a.SharesRemaining -= shares
	return a
}

func TestLiquidateSellsJustEnough(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	p := g.players[0]
	p.Cash = 400
	a := grantShares(t, g, p.ID, 1, 2) // price 500

	g.liquidate(p, 500)

	if !p.IsAlive {
		t.Fatalf("solvent player eliminated")
	}
	if p.Cash != 900 {
		t.Fatalf("cash=%d want 900 (one forced sale at 500)", p.Cash)
	}
	if a.OwnedBy(p.ID) != 1 {
		t.Fatalf("owned=%d want 1", a.OwnedBy(p.ID))
	}
	assertShareInvariant(t, g)
}

func TestLiquidateSellsFallingSectorFirst(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	p := g.players[0]
	p.Cash = 0

	// Meme Coin has the lowest dividend on the board, but the energy
	// sector just took the down shock, so the Power Company stake must
	// go first anyway.
	coin := grantShares(t, g, p.ID, 10, 1)
	power := grantShares(t, g, p.ID, 5, 1)
	g.lastDownTag = SectorEnergy

	g.liquidate(p, 400)

	if power.OwnedBy(p.ID) != 0 {
		t.Fatalf("falling-sector stake survived the sale")
	}
	if coin.OwnedBy(p.ID) != 1 {
		t.Fatalf("healthy stake sold before the falling one")
	}
	if p.Cash != 500 {
		t.Fatalf("cash=%d want 500", p.Cash)
	}
	assertShareInvariant(t, g)
}

func TestLiquidatePrefersWeakestDividend(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	p := g.players[0]
	p.Cash = 0

	cloud := grantShares(t, g, p.ID, 2, 1) // dividend 250
	coin := grantShares(t, g, p.ID, 10, 1) // dividend 150
	bonds := grantShares(t, g, p.ID, 8, 1) // dividend 200

	g.liquidate(p, 400)

	if coin.OwnedBy(p.ID) != 0 {
		t.Fatalf("lowest dividend not sold first")
	}
	if cloud.OwnedBy(p.ID) != 1 || bonds.OwnedBy(p.ID) != 1 {
		t.Fatalf("stronger stakes sold; want only one sale")
	}
	assertShareInvariant(t, g)
}

func TestLiquidateEliminatesWhenNothingSells(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	p := g.players[0]
	p.Cash = 0

	a := grantShares(t, g, p.ID, 10, 2)
	a.Price = 0 // zeroed stakes cannot raise cash
	b := grantShares(t, g, p.ID, 5, 1)
	b.Price = 0

	g.liquidate(p, 50)

	if p.IsAlive {
		t.Fatalf("player should be eliminated")
	}
	if p.Cash != 0 {
		t.Fatalf("cash=%d want 0 after elimination", p.Cash)
	}
	for _, tile := range g.board {
		if tile.OwnedBy(p.ID) != 0 {
			t.Fatalf("asset %q still holds shares for the eliminated player", tile.Name)
		}
	}
	assertShareInvariant(t, g)
}

func TestLiquidateSellsEverythingBeforeEliminating(t *testing.T) {
	g := newTestGame(t, twoHumans(), nil)
	p := g.players[0]
	p.Cash = 0
	grantShares(t, g, p.ID, 1, 3)

	g.liquidate(p, 2000)

	if p.IsAlive {
		t.Fatalf("3 shares at 500 cannot cover 2000; want elimination")
	}
	if p.Cash != 0 {
		t.Fatalf("cash=%d want 0", p.Cash)
	}
	assertShareInvariant(t, g)
}
