package commands

import (
	"github.com/spf13/cobra"

	"github.com/cleared-dev/homekeep/internal/shell"
)

func newReplayCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <script.yaml>",
		Short: "Run the steps of a YAML script against a fresh household",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqs, err := shell.LoadScript(args[0])
			if err != nil {
				return err
			}

			sess := a.newSession()
			sh := shell.New(sess, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)
			runErr := sh.Replay(cmd.Context(), reqs)
			if err := a.saveTranscript(sess); err != nil {
				return err
			}
			return runErr
		},
	}
}
