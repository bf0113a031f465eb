package game

import "sort"

// liquidate force-sells the player's holdings until cash covers need.
// Falling-sector holdings go first, then the weakest dividends; pure
// ties break randomly. If everything sells and cash still falls short
// the player is eliminated and every remaining share across the board
// returns to its pool. Called with g.mu held.
func (g *Game) liquidate(p *Player, need int) {
	type holding struct {
		asset   *Asset
		owned   int
		tieKey  float64
		falling bool
	}

	holdings := make([]holding, 0, len(g.board))
	for _, a := range g.board {
		if owned := a.OwnedBy(p.ID); owned > 0 {
			holdings = append(holdings, holding{
				asset:   a,
				owned:   owned,
				tieKey:  g.rng.Float64(),
				falling: g.lastDownTag != "" && a.Tag == g.lastDownTag,
			})
		}
	}

	sort.SliceStable(holdings, func(i, j int) bool {
		if holdings[i].falling != holdings[j].falling {
			return holdings[i].falling
		}
		if holdings[i].asset.Dividend != holdings[j].asset.Dividend {
			return holdings[i].asset.Dividend < holdings[j].asset.Dividend
		}
		return holdings[i].tieKey < holdings[j].tieKey
	})

	for _, h := range holdings {
		if p.Cash >= need {
			break
		}
		price := h.asset.Price
		if price <= 0 {
			continue
		}
		shortfall := need - p.Cash
		toSell := (shortfall + price - 1) / price
		if toSell > h.owned {
			toSell = h.owned
		}
		p.Cash += toSell * price
		entry := h.asset.holding(p.ID)
		entry.Shares -= toSell
		h.asset.SharesRemaining += toSell
		if h.asset.SharesRemaining > h.asset.SharesTotal {
			h.asset.SharesRemaining = h.asset.SharesTotal
		}
		if entry.Shares == 0 {
			h.asset.removeHolder(p.ID)
		}
		g.log.Info("forced sale", "game", g.id, "player", p.Name, "asset", h.asset.Name, "shares", toSell, "price", price)
	}

	if p.Cash >= need {
		return
	}

	// Elimination clears the whole portfolio, including assets the sell
	// loop never touched.
	p.IsAlive = false
	p.Cash = 0
	for _, a := range g.board {
		a.removeHolder(p.ID)
	}
	g.log.Info("player eliminated", "game", g.id, "player", p.Name, "needed", need)
}
