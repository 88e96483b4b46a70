package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game lobby commands",
	}

	cmd.AddCommand(newGameCreateCmd())
	cmd.AddCommand(newGameJoinCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameLeaveCmd())
	cmd.AddCommand(newGameTimerCmd())
	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameRematchCmd())

	return cmd
}

// saveJoinedToken persists the per-game token so later commands are
// authorized without re-joining.
func saveJoinedToken(result JoinedGame) error {
	if result.Token == "" {
		return nil
	}
	if err := cfg.SaveToken(result.Token); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	client.SetToken(result.Token)
	return nil
}

func newGameCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <nickname>",
		Short: "Create a new game and join as host",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"nickname": args[0]}
			var result JoinedGame

			if err := client.Post("/api/v1/games", req, &result); err != nil {
				return err
			}

			if err := saveJoinedToken(result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameJoinCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "join <game-id> <nickname>",
		Short: "Join an existing game",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"nickname": args[1]}
			var result JoinedGame

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/join", args[0]), req, &result); err != nil {
				return err
			}

			if err := saveJoinedToken(result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <game-id>",
		Short: "Get your view of the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Get(fmt.Sprintf("/api/v1/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameLeaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leave <game-id>",
		Short: "Leave the game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/leave", args[0]), nil, nil); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Left game")
			return nil
		},
	}
}

func newGameTimerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "timer <game-id> <seconds>",
		Short: "Set the voting timer (host only, 0 disables)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seconds, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid seconds: %w", err)
			}

			req := map[string]int{"seconds": seconds}
			var result GameState

			if err := client.Patch(fmt.Sprintf("/api/v1/games/%s/timer", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameStartCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start <game-id>",
		Short: "Start the game (host only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GameState

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/start", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameRematchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rematch <game-id>",
		Short: "Create or join the rematch for a finished game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result JoinedGame

			if err := client.Post(fmt.Sprintf("/api/v1/games/%s/rematch", args[0]), nil, &result); err != nil {
				return err
			}

			if err := saveJoinedToken(result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
