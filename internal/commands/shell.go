package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/homekeep/internal/activitylog"
	"github.com/cleared-dev/homekeep/internal/session"
	"github.com/cleared-dev/homekeep/internal/shell"
)

func newShellCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Manage a household interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess := a.newSession()
			sh := shell.New(sess, cmd.InOrStdin(), cmd.OutOrStdout(), a.logger)

			if name := a.cfg.Household.DefaultName; name != "" {
				res, err := sess.Dispatch(cmd.Context(), session.Request{Kind: session.CreateHousehold, Name: name})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), shell.Render(res))
			}

			runErr := sh.Run(cmd.Context())
			if err := a.saveTranscript(sess); err != nil {
				return err
			}
			return runErr
		},
	}
}

func (a *app) newSession() *session.Session {
	return session.New(session.Options{
		Currency:        a.cfg.Household.Currency,
		NearBudgetRatio: a.cfg.NearBudgetRatio(),
		Premium:         a.cfg.Premium,
		ExportDir:       a.resolve(a.cfg.Export.Dir),
		Logger:          a.logger,
		Now:             time.Now,
	})
}

// saveTranscript appends the session's activity to the transcript file
// when one is enabled.
func (a *app) saveTranscript(sess *session.Session) error {
	if !a.cfg.Transcript.Enabled {
		return nil
	}
	path := a.resolve(a.cfg.Transcript.Path)
	entries := sess.Entries()
	if err := activitylog.Append(path, entries); err != nil {
		return fmt.Errorf("saving transcript: %w", err)
	}
	a.logger.Debug("transcript saved", "path", path, "entries", len(entries))
	return nil
}
