package game

// ShouldBuy is the computer seat's buy heuristic. CRYPTO and MEDIA are
// treated as speculative plays: a lower dividend bar and a higher
// acceptance rate than the steady sectors. The probabilistic branch is
// deliberate variability, not noise to be removed.
func ShouldBuy(p *Player, a *Asset, rng Rand) bool {
	if a.Payday || a.Bankrupt || a.SharesRemaining <= 0 {
		return false
	}
	if p.Cash < a.Price {
		return false
	}
	if p.Cash-a.Price < ComputerReserve {
		return false
	}

	switch a.Tag {
	case SectorCrypto, SectorMedia:
		if a.Dividend < SpeculativeDividendMin {
			return false
		}
		return rng.Float64() < 0.9
	default:
		if a.Dividend < SteadyDividendMin {
			return false
		}
		return rng.Float64() < 0.8
	}
}
