package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "In-game actions",
	}

	cmd.AddCommand(newPlayVotingCmd())
	cmd.AddCommand(newPlayVoteCmd())
	cmd.AddCommand(newPlayGuessCmd())

	return cmd
}

func newPlayVotingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "voting <game-id>",
		Short: "Open a voting round (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/voting", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayVoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vote <game-id> <target-player-id>",
		Short: "Vote to eliminate a player",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"target_id": args[1]}
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/vote", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newPlayGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <game-id> <word>",
		Short: "Guess the villager word (eliminated dragon only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"guess": args[1]}
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/guess", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
