package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	cl "newsopoly/internal/cli"
	"newsopoly/internal/config"
	"newsopoly/internal/game"

	"github.com/spf13/cobra"
)

func main() {
	config.LoadDotenv()
	cfg := config.LoadCLIFromEnv()
	apiBase := cfg.APIBaseURL

	root := &cobra.Command{
		Use:          "npy",
		Short:        "Newsopoly CLI game client",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&apiBase, "api", apiBase, "API base URL")

	root.AddCommand(
		newNewCmd(&apiBase),
		newStateCmd(&apiBase),
		newRollCmd(&apiBase),
		newBuyCmd(&apiBase),
		newSellCmd(&apiBase),
		newEndCmd(&apiBase),
		newForgetCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newClient(apiBase *string) *cl.Client {
	return cl.NewClient(strings.TrimRight(strings.TrimSpace(*apiBase), "/"))
}

func requestContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), 30*time.Second)
}

func newNewCmd(apiBase *string) *cobra.Command {
	var name string
	var bots int
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Start a new game and attach this terminal to it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if bots < 1 || bots > game.MaxSeats-1 {
				return fmt.Errorf("bots must be between 1 and %d", game.MaxSeats-1)
			}
			seats := []game.Seat{{Name: name}}
			for i := 0; i < bots; i++ {
				seats = append(seats, game.Seat{Name: fmt.Sprintf("Bot %d", i+1), Computer: true})
			}

			ctx, cancel := requestContext(cmd)
			defer cancel()
			snap, err := newClient(apiBase).NewGame(ctx, seats)
			if err != nil {
				return err
			}
			if err := cl.SaveSession(cl.Session{GameID: snap.ID}); err != nil {
				return err
			}
			printSuccess("Game created: " + snap.ID)
			renderSnapshot(snap)
			return nil
		},
	}
	cmd.Flags().StringVar(&name, "name", "You", "your seat name")
	cmd.Flags().IntVar(&bots, "bots", 3, "number of computer opponents")
	return cmd
}

func newStateCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the attached game",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			snap, err := newClient(apiBase).State(ctx, sess.GameID)
			if err != nil {
				return err
			}
			renderSnapshot(snap)
			return nil
		},
	}
}

func newRollCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "roll",
		Short: "Roll the dice",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			out, err := newClient(apiBase).Roll(ctx, sess.GameID)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("You rolled a %d.", out.Dice))
			renderSnapshot(out.State)
			return nil
		},
	}
}

func newBuyCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <asset-id>",
		Short: "Buy one share of the tile you landed on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("asset id must be a number: %w", err)
			}
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			snap, err := newClient(apiBase).Buy(ctx, sess.GameID, assetID)
			if err != nil {
				return err
			}
			printSuccess("Share bought.")
			renderSnapshot(snap)
			return nil
		},
	}
}

func newSellCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "sell <asset-id> [shares]",
		Short: "Sell shares before you roll",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			assetID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("asset id must be a number: %w", err)
			}
			shares := 1
			if len(args) == 2 {
				shares, err = strconv.Atoi(args[1])
				if err != nil {
					return fmt.Errorf("shares must be a number: %w", err)
				}
			}
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			snap, err := newClient(apiBase).Sell(ctx, sess.GameID, assetID, shares)
			if err != nil {
				return err
			}
			printSuccess(fmt.Sprintf("Sold %d share(s).", shares))
			renderSnapshot(snap)
			return nil
		},
	}
}

func newEndCmd(apiBase *string) *cobra.Command {
	return &cobra.Command{
		Use:   "end",
		Short: "End your turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := cl.LoadSession()
			if err != nil {
				return err
			}
			ctx, cancel := requestContext(cmd)
			defer cancel()
			snap, err := newClient(apiBase).EndTurn(ctx, sess.GameID)
			if err != nil {
				return err
			}
			renderSnapshot(snap)
			return nil
		},
	}
}

func newForgetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "forget",
		Short: "Detach from the current game",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := cl.ClearSession(); err != nil {
				return err
			}
			printSuccess("Session cleared.")
			return nil
		},
	}
}
