package game

// Sector is the closed set of market categories a news shock can target.
type Sector string

const (
	SectorAI     Sector = "AI"
	SectorChips  Sector = "CHIPS"
	SectorEnergy Sector = "ENERGY"
	SectorGov    Sector = "GOV"
	SectorCrypto Sector = "CRYPTO"
	SectorMedia  Sector = "MEDIA"
)

// Sectors lists every valid sector in a stable order.
func Sectors() []Sector {
	return []Sector{SectorAI, SectorChips, SectorEnergy, SectorGov, SectorCrypto, SectorMedia}
}

// ParseSector normalizes collaborator-supplied tags. Unknown values
// report false so callers can fall back to a safe default.
func ParseSector(s string) (Sector, bool) {
	switch Sector(s) {
	case SectorAI, SectorChips, SectorEnergy, SectorGov, SectorCrypto, SectorMedia:
		return Sector(s), true
	}
	return "", false
}

// Shareholding records one player's stake in one asset. PurchaseDividend
// is a weighted running average kept for P&L display only; settlement
// never reads it.
type Shareholding struct {
	PlayerID         int `json:"player_id"`
	Shares           int `json:"shares"`
	PurchaseDividend int `json:"purchase_dividend"`
}

// Asset is one tile on the loop. The payday tile carries no dividend or
// trading semantics; landing on or passing it only pays the bonus.
type Asset struct {
	ID               int            `json:"id"`
	Name             string         `json:"name"`
	Tag              Sector         `json:"tag"`
	Dividend         int            `json:"dividend"`
	PreviousDividend int            `json:"previous_dividend"`
	Price            int            `json:"price"`
	PreviousPrice    int            `json:"previous_price"`
	SharesTotal      int            `json:"shares_total"`
	SharesRemaining  int            `json:"shares_remaining"`
	Bankrupt         bool           `json:"bankrupt"`
	Payday           bool           `json:"payday"`
	Holders          []Shareholding `json:"holders"`
}

func (a *Asset) holding(playerID int) *Shareholding {
	for i := range a.Holders {
		if a.Holders[i].PlayerID == playerID {
			return &a.Holders[i]
		}
	}
	return nil
}

// OwnedBy reports how many shares of this asset the player holds.
func (a *Asset) OwnedBy(playerID int) int {
	if h := a.holding(playerID); h != nil {
		return h.Shares
	}
	return 0
}

// heldShares sums every shareholder's stake.
func (a *Asset) heldShares() int {
	total := 0
	for _, h := range a.Holders {
		total += h.Shares
	}
	return total
}

// removeHolder returns all of one player's shares to the pool.
func (a *Asset) removeHolder(playerID int) int {
	for i := range a.Holders {
		if a.Holders[i].PlayerID != playerID {
			continue
		}
		owned := a.Holders[i].Shares
		a.Holders = append(a.Holders[:i], a.Holders[i+1:]...)
		a.SharesRemaining += owned
		if a.SharesRemaining > a.SharesTotal {
			a.SharesRemaining = a.SharesTotal
		}
		return owned
	}
	return 0
}

// NewBoard builds the fixed sixteen-tile loop. Tile 0 is payday.
func NewBoard() []*Asset {
	seed := []struct {
		name     string
		tag      Sector
		dividend int
		payday   bool
	}{
		{"Payday", SectorGov, 0, true},
		{"AI Agent Startup", SectorAI, 200, false},
		{"Big Tech Cloud", SectorAI, 250, false},
		{"GPU Maker", SectorChips, 250, false},
		{"Chip Factory", SectorChips, 200, false},
		{"Power Company", SectorEnergy, 200, false},
		{"Oil & Gas Giant", SectorEnergy, 250, false},
		{"Central Bank", SectorGov, 250, false},
		{"Government Bonds", SectorGov, 200, false},
		{"Crypto Exchange", SectorCrypto, 200, false},
		{"Meme Coin", SectorCrypto, 150, false},
		{"FinTech App", SectorCrypto, 200, false},
		{"Social Media Platform", SectorMedia, 250, false},
		{"Influencer Agency", SectorMedia, 200, false},
		{"Streaming Studio", SectorMedia, 200, false},
		{"Big Law & Compliance", SectorGov, 200, false},
	}

	board := make([]*Asset, 0, len(seed))
	for i, row := range seed {
		board = append(board, &Asset{
			ID:               i,
			Name:             row.name,
			Tag:              row.tag,
			Dividend:         row.dividend,
			PreviousDividend: row.dividend,
			Price:            IPOBasePrice,
			PreviousPrice:    IPOBasePrice,
			SharesTotal:      SharesPerAsset,
			SharesRemaining:  SharesPerAsset,
			Payday:           row.payday,
		})
	}
	return board
}

// ipoListing is a replacement company handed out when a bankrupt asset
// is recycled.
type ipoListing struct {
	name string
	tag  Sector
}

var ipoCandidates = []ipoListing{
	{"AI Safety Auditor", SectorAI},
	{"Chip Packaging Plant", SectorChips},
	{"Battery & Storage", SectorEnergy},
	{"Stablecoin Bank", SectorCrypto},
	{"Short Video Network", SectorMedia},
}
