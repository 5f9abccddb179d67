package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
)

var changeLogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Manage the repair-date change log",
}

var changeLogAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a change log entry",
	RunE:  runChangeLogAdd,
}

var changeLogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List change log entries",
	RunE:  runChangeLogList,
}

var changeLogClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the change log document",
	RunE:  runChangeLogClear,
}

// Flags for changelog add.
var changeLogInput struct {
	modifier string
	date     string
	kind     string
	newDate  string
}

func init() {
	flags := changeLogAddCmd.Flags()
	flags.StringVar(&changeLogInput.modifier, "modifier", "", "Name of the person making the change")
	flags.StringVar(&changeLogInput.date, "date", "", "Modification date (defaults to now)")
	flags.StringVar(&changeLogInput.kind, "type", "", "Modification type, e.g. \"update Actual Repair Date\"")
	flags.StringVar(&changeLogInput.newDate, "new-date", "", "The new repair date")

	changeLogCmd.AddCommand(changeLogAddCmd)
	changeLogCmd.AddCommand(changeLogListCmd)
	changeLogCmd.AddCommand(changeLogClearCmd)
	rootCmd.AddCommand(changeLogCmd)
}

func runChangeLogAdd(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if changeLogService == nil {
		return errors.New("change log service not configured")
	}

	date := changeLogInput.date
	if date == "" {
		date = time.Now().Format(dateTimeLayout)
	}

	entry, err := changeLogService.Create(context.Background(), domain.ChangeLogEntry{
		ModifierName:     changeLogInput.modifier,
		ModificationDate: date,
		ModificationType: changeLogInput.kind,
		NewDate:          changeLogInput.newDate,
	})
	if err != nil {
		return fmt.Errorf("failed to create change log entry: %w", err)
	}

	cmd.Printf("Change log entry %s recorded.\n", entry.ID)
	return nil
}

func runChangeLogList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if changeLogService == nil {
		return errors.New("change log service not configured")
	}

	entries, err := changeLogService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list change log entries: %w", err)
	}

	if len(entries) == 0 {
		cmd.Println("No change log entries.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("  %s  %s  %s", e.ID, e.ModificationDate, e.ModificationType)
		if e.NewDate != "" {
			cmd.Printf(" -> %s", e.NewDate)
		}
		if e.ModifierName != "" {
			cmd.Printf("  (%s)", e.ModifierName)
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d entries\n", len(entries))
	return nil
}

func runChangeLogClear(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if changeLogService == nil {
		return errors.New("change log service not configured")
	}

	if err := changeLogService.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear change log: %w", err)
	}

	cmd.Println("Change log cleared.")
	return nil
}
