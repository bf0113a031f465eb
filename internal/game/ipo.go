package game

// recycleBankruptAssets relists every dividend-zero asset as the next
// candidate from the rotating IPO pool. The cursor persists across
// calls so successive bankruptcies cycle through the whole list.
// Recycling clears shareholders; a dividend-zero asset never survives a
// cycle still holding them. Called with g.mu held.
func (g *Game) recycleBankruptAssets() {
	for _, a := range g.board {
		if a.Payday || a.Dividend > 0 {
			continue
		}
		listing := ipoCandidates[g.ipoCursor%len(ipoCandidates)]
		g.ipoCursor++

		a.Name = listing.name
		a.Tag = listing.tag
		a.Dividend = IPOBaseDividend
		a.PreviousDividend = IPOBaseDividend
		a.Price = IPOBasePrice
		a.PreviousPrice = IPOBasePrice
		a.SharesRemaining = a.SharesTotal
		a.Holders = nil
		a.Bankrupt = false

		g.log.Info("asset recycled", "game", g.id, "asset", a.Name, "sector", a.Tag)
	}
}
