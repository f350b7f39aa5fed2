package ui

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/writestack/writestack/internal/ai"
	"github.com/writestack/writestack/internal/writer"
)

const maxRetries = 3

func (a *App) draftCmd() *cobra.Command {
	var (
		modelFlag string
		count     int
		dryRun    bool
	)

	cmd := &cobra.Command{
		Use:   "draft [topic]",
		Short: "Generate note drafts with AI",
		Long: `Use AI to generate post drafts about a topic.

The drafts are shown for review before anything is saved. Accepted
drafts land in the queue as unscheduled notes.

Interactive mode:
  After the AI proposes drafts, you can:
  - [a]ccept: Save the drafts
  - [m]odify: Provide feedback to adjust them
  - [c]ancel: Exit without saving`,
		Example: `  writestack draft "lessons from a year of daily posting"
  writestack draft "audience growth" --count=5
  writestack draft "pricing myths" --dry-run`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			topic := strings.Join(args, " ")

			model := modelFlag
			if model == "" {
				model = a.config.AI.Model
			}

			client, err := ai.NewClient(a.config.AI.Provider, model, a.config.AI.BaseURL)
			if err != nil {
				return fmt.Errorf("creating AI client: %w", err)
			}

			w := writer.New(client, a.repo)

			fmt.Println("Drafting...")
			result, err := w.Generate(context.Background(), writer.DraftRequest{
				Topic: topic,
				Voice: a.config.AI.Voice,
				Count: count,
			}, maxRetries)
			if err != nil {
				return fmt.Errorf("generating drafts: %w", err)
			}

			reader := bufio.NewReader(os.Stdin)
			for {
				displayDrafts(result)

				if result.HasValidationErrors() {
					fmt.Println("\nValidation errors (retry limit reached):")
					for _, ve := range result.ValidationErrors {
						fmt.Printf("  - %s\n", ve.Message)
					}
				}

				if dryRun {
					fmt.Println("\n(Dry run - drafts not saved)")
					return nil
				}

				fmt.Print("\n[a]ccept / [m]odify / [c]ancel: ")
				choice, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				choice = strings.TrimSpace(strings.ToLower(choice))

				switch choice {
				case "a", "accept":
					if result.HasValidationErrors() {
						fmt.Println("Cannot save: there are unresolved validation errors.")
						fmt.Println("Please [m]odify the drafts or [c]ancel.")
						continue
					}

					saved, err := w.Save(context.Background(), result)
					if err != nil {
						return fmt.Errorf("saving drafts: %w", err)
					}
					fmt.Printf("\n%s\n", formatSuccess(fmt.Sprintf("%d drafts saved", len(saved))))
					return nil

				case "m", "modify":
					fmt.Print("Feedback: ")
					feedback, err := reader.ReadString('\n')
					if err != nil {
						return fmt.Errorf("reading input: %w", err)
					}
					feedback = strings.TrimSpace(feedback)
					if feedback == "" {
						continue
					}

					fmt.Println("Redrafting...")
					result, err = w.Refine(context.Background(), feedback, maxRetries)
					if err != nil {
						return fmt.Errorf("refining drafts: %w", err)
					}

				case "c", "cancel":
					fmt.Println("Cancelled.")
					return nil

				default:
					fmt.Println("Please choose [a], [m], or [c].")
				}
			}
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "Override the configured model")
	cmd.Flags().IntVar(&count, "count", 0, "Number of drafts to generate")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show drafts without saving")

	return cmd
}

func displayDrafts(result *writer.DraftResult) {
	fmt.Println()
	fmt.Println(formatHeader(fmt.Sprintf("Proposed drafts (%d)", len(result.Drafts))))
	for i, d := range result.Drafts {
		fmt.Printf("\n%s\n%s\n", formatMuted(fmt.Sprintf("--- draft %d ---", i+1)), d.Body)
	}
}
