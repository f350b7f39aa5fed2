package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/writestack/writestack/internal/dateutil"
	"github.com/writestack/writestack/internal/timeline"
)

func (a *App) queueCmd() *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Show the upcoming send queue",
		Long: `Show the merged send queue: scheduled notes interleaved with open
recurring slots for the coming days.

Notes that drifted away from every recurring slot are marked
[off schedule]; notes whose send time already passed are marked
[past due] and can be sent immediately with "writestack send".`,
		Example: `  writestack queue
  writestack queue --days=14`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if days <= 0 {
				days = a.config.Schedule.QueueDays
			}

			now := time.Now()
			start := dateutil.TruncateToDay(now)
			end := start.AddDate(0, 0, days)

			ctx := context.Background()
			notes, err := a.repo.ListNotesByDateRange(ctx, start, end)
			if err != nil {
				return fmt.Errorf("loading notes: %w", err)
			}
			slots, err := a.repo.ListSlots(ctx)
			if err != nil {
				return fmt.Errorf("loading slots: %w", err)
			}

			dayList := dateutil.DaysInRange(start, end)
			merged := timeline.Merge(dayList, notes, slots, now)
			offSchedule := timeline.Discrepancies(notes, slots)

			width := previewWidth()
			empty := true
			for _, day := range dayList {
				entries := merged[dateutil.DayKey(day)]
				if len(entries) == 0 {
					continue
				}
				if !empty {
					fmt.Println()
				}
				empty = false
				fmt.Println(formatDay(day, now))
				for _, s := range entries {
					printTimelineRow(s, offSchedule, width)
				}
			}

			if empty {
				fmt.Println("Queue is empty. Add recurring slots with \"writestack slots add\".")
			}

			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "Days to show (defaults to queue_days from config)")

	return cmd
}
