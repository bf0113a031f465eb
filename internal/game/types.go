package game

// Snapshot is the read-only view handed to display layers. It is a deep
// copy; mutating it never touches the live game.
type Snapshot struct {
	ID            string        `json:"id"`
	Players       []PlayerView  `json:"players"`
	Board         []AssetView   `json:"board"`
	ActiveIndex   int           `json:"active_index"`
	TurnCount     int           `json:"turn_count"`
	Dice          int           `json:"dice"`
	HasRolled     bool          `json:"has_rolled"`
	CurrentEvent  *MarketEvent  `json:"current_event,omitempty"`
	PendingEvents int           `json:"pending_events"`
	History       []MarketEvent `json:"history"`
	LastDownTag   Sector        `json:"last_down_tag,omitempty"`
	Winner        *WinnerView   `json:"winner,omitempty"`
}

type PlayerView struct {
	Player
	NetWorth int `json:"net_worth"`
}

type AssetView struct {
	Asset
	Holders []Shareholding `json:"holders"`
}

type WinnerView struct {
	PlayerID int    `json:"player_id"`
	Name     string `json:"name"`
	Reason   string `json:"reason"`
}

// Snapshot captures the current state for display.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	snap := Snapshot{
		ID:            g.id.String(),
		ActiveIndex:   g.active,
		TurnCount:     g.turnCount,
		Dice:          g.dice,
		HasRolled:     g.hasRolled,
		PendingEvents: len(g.pending),
		LastDownTag:   g.lastDownTag,
	}
	for _, p := range g.players {
		snap.Players = append(snap.Players, PlayerView{
			Player:   *p,
			NetWorth: p.NetWorth(g.board),
		})
	}
	for _, a := range g.board {
		view := AssetView{Asset: *a}
		view.Holders = append([]Shareholding(nil), a.Holders...)
		view.Asset.Holders = view.Holders
		snap.Board = append(snap.Board, view)
	}
	if g.current != nil {
		ev := *g.current
		snap.CurrentEvent = &ev
	}
	snap.History = append([]MarketEvent(nil), g.history...)
	if g.winner >= 0 {
		snap.Winner = &WinnerView{
			PlayerID: g.winner,
			Name:     g.players[g.winner].Name,
			Reason:   g.winReason,
		}
	}
	return snap
}
