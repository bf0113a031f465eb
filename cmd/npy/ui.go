package main

import (
	"fmt"
	"strings"

	"newsopoly/internal/game"

	"github.com/fatih/color"
)

var (
	accent  = color.New(color.FgCyan, color.Bold)
	success = color.New(color.FgGreen, color.Bold)
	warn    = color.New(color.FgYellow, color.Bold)
	danger  = color.New(color.FgRed, color.Bold)
	neutral = color.New(color.FgHiWhite)
)

func printSuccess(msg string) {
	success.Println(msg)
}

func renderSnapshot(snap game.Snapshot) {
	fmt.Println()
	accent.Printf("Turn %d/%d\n", snap.TurnCount, game.TurnLimit)

	if snap.Winner != nil {
		success.Printf("WINNER: %s (%s)\n", snap.Winner.Name, snap.Winner.Reason)
	} else if snap.TurnCount == game.TurnLimit {
		warn.Println("Final turn: highest net worth takes it.")
	}

	if ev := snap.CurrentEvent; ev != nil {
		renderEvent(*ev)
	}

	fmt.Println()
	neutral.Printf("%-3s %-22s %-6s %8s %8s %5s  %s\n", "ID", "ASSET", "TAG", "DIV", "PRICE", "POOL", "HOLDERS")
	for _, a := range snap.Board {
		if a.Payday {
			neutral.Printf("%-3d %-22s %-6s %8s %8s %5s  payday +%d\n", a.ID, a.Name, "-", "-", "-", "-", game.PaydayBonus)
			continue
		}
		line := fmt.Sprintf("%-3d %-22s %-6s %8s %8d %5d  %s",
			a.ID, a.Name, a.Tag, trend(a.Dividend, a.PreviousDividend), a.Price, a.SharesRemaining, holders(snap, a))
		if a.Bankrupt {
			danger.Println(line)
		} else {
			fmt.Println(line)
		}
	}

	fmt.Println()
	for _, p := range snap.Players {
		marker := "  "
		if p.ID == snap.ActiveIndex {
			marker = "> "
		}
		line := fmt.Sprintf("%s%-10s tile=%-2d cash=%-6d net=%d", marker, p.Name, p.Position, p.Cash, p.NetWorth)
		switch {
		case !p.IsAlive:
			danger.Println(line + "  OUT")
		case p.ID == snap.ActiveIndex:
			accent.Println(line)
		default:
			fmt.Println(line)
		}
	}
}

func renderEvent(ev game.MarketEvent) {
	var banner *color.Color
	switch {
	case ev.Type == game.EventNoise && ev.EffectTag == "":
		banner = neutral
	case ev.Direction == game.DirectionDown:
		banner = danger
	default:
		banner = success
	}
	banner.Printf("NEWS: %s\n", ev.Title)
	if ev.Reason != "" {
		fmt.Println("  " + ev.Reason)
	}
	if ev.EffectTag != "" {
		fmt.Printf("  %s dividends %+d, prices %+d\n", ev.EffectTag, ev.DividendDelta, ev.PriceDelta)
	}
}

func trend(current, previous int) string {
	switch {
	case current > previous:
		return fmt.Sprintf("%d^", current)
	case current < previous:
		return fmt.Sprintf("%dv", current)
	default:
		return fmt.Sprintf("%d", current)
	}
}

func holders(snap game.Snapshot, a game.AssetView) string {
	if len(a.Holders) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(a.Holders))
	for _, h := range a.Holders {
		name := fmt.Sprintf("#%d", h.PlayerID)
		if h.PlayerID < len(snap.Players) {
			name = snap.Players[h.PlayerID].Name
		}
		parts = append(parts, fmt.Sprintf("%s x%d", name, h.Shares))
	}
	return strings.Join(parts, ", ")
}
