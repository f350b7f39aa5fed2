package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/note"
)

func (a *App) addCmd() *cobra.Command {
	var (
		when string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "add [body]",
		Short: "Add a new note",
		Long: `Add a note to the queue.

Without --when the note is saved as an unscheduled draft. With --when
(and optionally --at) it is scheduled immediately.`,
		Example: `  writestack add "Consistency beats intensity."
  writestack add "Monday thought" --when=tomorrow --at=9:30am
  writestack add "Launch recap" --when=2025-03-14 --at=2:00pm`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			n, err := note.NewDraft(args[0])
			if err != nil {
				return err
			}

			if when != "" {
				sendAt, err := resolveSendTime(when, at, time.Now())
				if err != nil {
					return err
				}
				if err := n.Schedule(sendAt); err != nil {
					return err
				}
			}

			if err := a.repo.CreateNote(context.Background(), n); err != nil {
				return fmt.Errorf("creating note: %w", err)
			}

			if n.ScheduledTo != nil {
				fmt.Printf("Scheduled note for %s: %s\n",
					n.ScheduledTo.Format("2006-01-02 3:04pm"),
					n.Preview(defaultPreviewWidth))
			} else {
				fmt.Printf("Saved draft: %s\n", n.Preview(defaultPreviewWidth))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&when, "when", "", "Send date (YYYY-MM-DD, today, tomorrow, or a weekday name)")
	cmd.Flags().StringVar(&at, "at", "9:00am", "Send time of day (e.g. 9:30am)")

	return cmd
}

// resolveSendTime combines a date spec and a clock spec into a timestamp.
func resolveSendTime(when, at string, now time.Time) (time.Time, error) {
	day, err := dateutil.ParseRelativeDate(when, now)
	if err != nil {
		return time.Time{}, err
	}

	minute, err := note.ParseClock(at)
	if err != nil {
		return time.Time{}, err
	}

	return dateutil.At(day, minute), nil
}
