package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func (a *App) scheduleCmd() *cobra.Command {
	var (
		when string
		at   string
	)

	cmd := &cobra.Command{
		Use:   "schedule [note-id]",
		Short: "Schedule or reschedule a note",
		Example: `  writestack schedule 4f8c... --when=tomorrow --at=9:00am
  writestack schedule 4f8c... --when=friday --at=2:30pm`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			sendAt, err := resolveSendTime(when, at, time.Now())
			if err != nil {
				return err
			}

			ctx := context.Background()
			n, err := a.repo.GetNote(ctx, args[0])
			if err != nil {
				return err
			}
			if err := n.Schedule(sendAt); err != nil {
				return err
			}
			if err := a.repo.RescheduleNote(ctx, n.ID, sendAt); err != nil {
				return fmt.Errorf("rescheduling note: %w", err)
			}

			fmt.Printf("%s %s\n",
				formatSuccess("Scheduled for "+sendAt.Format("2006-01-02 3:04pm")+":"),
				n.Preview(defaultPreviewWidth))
			return nil
		},
	}

	cmd.Flags().StringVar(&when, "when", "", "Send date (YYYY-MM-DD, today, tomorrow, or a weekday name)")
	cmd.Flags().StringVar(&at, "at", "9:00am", "Send time of day (e.g. 9:30am)")
	_ = cmd.MarkFlagRequired("when")

	return cmd
}

func (a *App) unscheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unschedule [note-id]",
		Short: "Move a note back to drafts",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			n, err := a.repo.GetNote(ctx, args[0])
			if err != nil {
				return err
			}
			if err := n.Unschedule(); err != nil {
				return err
			}
			if err := a.repo.UnscheduleNote(ctx, n.ID); err != nil {
				return fmt.Errorf("unscheduling note: %w", err)
			}

			fmt.Printf("Moved back to drafts: %s\n", n.Preview(defaultPreviewWidth))
			return nil
		},
	}
}

func (a *App) sendCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "send [note-id]",
		Short: "Mark a note as sent now",
		Long: `Mark a note as published immediately.

Meant for past-due notes flagged in the queue, but works on any
scheduled note.`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			n, err := a.repo.GetNote(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.MarkPublished(ctx, n.ID); err != nil {
				return fmt.Errorf("marking note sent: %w", err)
			}

			fmt.Printf("%s %s\n", formatSuccess("Sent:"), n.Preview(defaultPreviewWidth))
			return nil
		},
	}
}

func (a *App) archiveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "archive [note-id]",
		Short: "Archive a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			ctx := context.Background()
			n, err := a.repo.GetNote(ctx, args[0])
			if err != nil {
				return err
			}
			if err := a.repo.ArchiveNote(ctx, n.ID); err != nil {
				return fmt.Errorf("archiving note: %w", err)
			}

			fmt.Printf("Archived: %s\n", n.Preview(defaultPreviewWidth))
			return nil
		},
	}
}
