package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/writestack/writestack/internal/note"
)

func (a *App) listCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List notes by status",
		Long: `List notes filtered by status, newest first.

Statuses: draft, scheduled, published, inspiration, chat_generated, archived.`,
		Example: `  writestack list
  writestack list --status=scheduled
  writestack list --status=chat_generated`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			st := note.Status(status)
			if !st.Valid() {
				return fmt.Errorf("unknown status: %s", status)
			}

			notes, err := a.repo.ListNotesByStatus(context.Background(), st)
			if err != nil {
				return fmt.Errorf("listing notes: %w", err)
			}

			if len(notes) == 0 {
				fmt.Printf("No %s notes.\n", st)
				return nil
			}

			width := previewWidth()
			fmt.Println(formatHeader(fmt.Sprintf("%s notes (%d)", st, len(notes))))
			for _, n := range notes {
				printNoteRow(n, width)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "draft", "Status to filter by")

	return cmd
}
