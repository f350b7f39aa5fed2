package ui

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/writestack/writestack/internal/config"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive()
		},
	}
}

func runConfigInteractive() error {
	configPath := config.DefaultConfigPath()
	fmt.Printf("Config file: %s\n\n", configPath)

	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		fmt.Println("No config file found. Creating with default values...")
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Printf("Created %s\n\n", configPath)
	}

	printConfig(cfg)

	if !promptYesNo("\nWould you like to edit the configuration?") {
		return nil
	}

	reader := bufio.NewReader(os.Stdin)

	cfg.Storage.DBPath = promptValue(reader, "Database path", cfg.Storage.DBPath)
	cfg.Schedule.QueueDays = promptInt(reader, "Queue days", cfg.Schedule.QueueDays)
	cfg.AI.Provider = promptValue(reader, "AI provider (openrouter/local)", cfg.AI.Provider)
	cfg.AI.Model = promptValue(reader, "AI model", cfg.AI.Model)
	cfg.AI.BaseURL = promptValue(reader, "AI base URL (empty for provider default)", cfg.AI.BaseURL)
	cfg.AI.Voice = promptValue(reader, "Draft voice guidance (optional)", cfg.AI.Voice)
	cfg.UI.Theme = promptValue(reader, "UI theme (dark/light)", cfg.UI.Theme)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	if err := cfg.Save(); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println("\nConfiguration saved!")
	return nil
}

func printConfig(cfg *config.Config) {
	fmt.Println("Current configuration:")
	fmt.Println("──────────────────────")
	fmt.Println("[storage]")
	fmt.Printf("  db_path    = %s\n", cfg.Storage.DBPath)
	fmt.Println("\n[schedule]")
	fmt.Printf("  queue_days = %d\n", cfg.Schedule.QueueDays)
	fmt.Println("\n[ai]")
	fmt.Printf("  provider   = %s\n", cfg.AI.Provider)
	fmt.Printf("  model      = %s\n", cfg.AI.Model)
	fmt.Printf("  base_url   = %s\n", cfg.AI.BaseURL)
	if cfg.AI.Voice != "" {
		fmt.Printf("  voice      = %s\n", cfg.AI.Voice)
	}
	fmt.Println("\n[ui]")
	fmt.Printf("  theme      = %s\n", cfg.UI.Theme)
}

func promptYesNo(question string) bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Printf("%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, label, current string) string {
	if current == "" {
		fmt.Printf("  %s: ", label)
	} else {
		fmt.Printf("  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptInt(reader *bufio.Reader, label string, current int) int {
	for {
		input := promptValue(reader, label, strconv.Itoa(current))
		n, err := strconv.Atoi(input)
		if err == nil && n > 0 {
			return n
		}
		fmt.Printf("  %q is not a positive number.\n", input)
	}
}
