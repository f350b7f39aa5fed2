package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/writestack/writestack/internal/note"
)

func (a *App) slotsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "slots",
		Short: "Manage recurring send slots",
		Long: `Manage the weekly grid of recurring send times.

Each slot is a clock time plus the weekdays it repeats on. The queue
offers every active slot as a drop target for scheduling notes.`,
	}

	cmd.AddCommand(a.slotsAddCmd())
	cmd.AddCommand(a.slotsListCmd())
	cmd.AddCommand(a.slotsDeleteCmd())

	return cmd
}

func (a *App) slotsAddCmd() *cobra.Command {
	var days string

	cmd := &cobra.Command{
		Use:   "add [time]",
		Short: "Add a recurring slot",
		Example: `  writestack slots add 9:00am --days=mon,wed,fri
  writestack slots add 2:30pm --days=saturday,sunday`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			hour, minute, meridiem, err := parseSlotTime(args[0])
			if err != nil {
				return err
			}

			weekdays, err := note.ParseWeekdays(days)
			if err != nil {
				return err
			}

			slot, err := note.NewSlot(hour, minute, meridiem, weekdays)
			if err != nil {
				return err
			}

			if err := a.repo.CreateSlot(context.Background(), slot); err != nil {
				return fmt.Errorf("creating slot: %w", err)
			}

			fmt.Printf("Added slot %s on %s\n", slot.Clock(), formatDays(slot))
			return nil
		},
	}

	cmd.Flags().StringVar(&days, "days", "", "Weekdays the slot repeats on (e.g. mon,wed,fri)")
	_ = cmd.MarkFlagRequired("days")

	return cmd
}

func (a *App) slotsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List recurring slots",
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			slots, err := a.repo.ListSlots(context.Background())
			if err != nil {
				return fmt.Errorf("listing slots: %w", err)
			}

			if len(slots) == 0 {
				fmt.Println("No recurring slots configured.")
				return nil
			}

			fmt.Println(formatHeader(fmt.Sprintf("Recurring slots (%d)", len(slots))))
			for _, s := range slots {
				fmt.Printf("  %-8s %s  %s\n", s.Clock(), formatDays(s), formatMuted(s.ID))
			}
			return nil
		},
	}
}

func (a *App) slotsDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete [slot-id]",
		Short: "Delete a recurring slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			if err := a.repo.DeleteSlot(context.Background(), args[0]); err != nil {
				return fmt.Errorf("deleting slot: %w", err)
			}

			fmt.Println("Slot deleted.")
			return nil
		},
	}
}

// parseSlotTime splits a clock string into the slot's stored fields.
func parseSlotTime(s string) (hour, minute int, meridiem note.Meridiem, err error) {
	m, err := note.ParseClock(s)
	if err != nil {
		return 0, 0, "", err
	}

	h := m / 60
	meridiem = note.MeridiemAM
	if h >= 12 {
		meridiem = note.MeridiemPM
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	return h, m % 60, meridiem, nil
}

// formatDays renders the active weekday list as "Mon, Wed, Fri".
func formatDays(s *note.RecurringSlot) string {
	var parts []string
	for _, w := range s.DayList() {
		parts = append(parts, w.String()[:3])
	}
	return strings.Join(parts, ", ")
}
