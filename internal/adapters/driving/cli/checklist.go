package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
)

var checklistCmd = &cobra.Command{
	Use:   "checklist",
	Short: "Manage inspection checklist records",
	Long:  `Record, list, amend or clear checklist observations.`,
}

var checklistAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a checklist observation",
	RunE:  runChecklistAdd,
}

var checklistListCmd = &cobra.Command{
	Use:   "list",
	Short: "List checklist records",
	RunE:  runChecklistList,
}

var checklistUpdateCmd = &cobra.Command{
	Use:   "update [record-id]",
	Short: "Amend fields of a checklist record",
	Long: `Amends a checklist record in place. Fields are addressed by their
stored names, e.g. --set "Comment=fixed on site" --set "Rating=1".`,
	Args: cobra.ExactArgs(1),
	RunE: runChecklistUpdate,
}

var checklistClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the checklist and delete all stored images",
	RunE:  runChecklistClear,
}

// Flags for checklist add.
var checklistInput struct {
	id       string
	location string
	element  string
	detector string
	date     string
	rating   int
	comment  string
}

// checklistSetFields holds repeated --set Key=Value pairs for update.
var checklistSetFields []string

func init() {
	flags := checklistAddCmd.Flags()
	flags.StringVar(&checklistInput.id, "id", "", "Record id (assigned automatically when omitted)")
	flags.StringVar(&checklistInput.location, "location", "", "Inspected location")
	flags.StringVar(&checklistInput.element, "element", "", "Inspected element")
	flags.StringVar(&checklistInput.detector, "detector", "", "Name of the person who detected the finding")
	flags.StringVar(&checklistInput.date, "date", "", "Inspection date")
	flags.IntVar(&checklistInput.rating, "rating", 0, "Condition rating")
	flags.StringVar(&checklistInput.comment, "comment", "", "Free-text comment")

	checklistUpdateCmd.Flags().StringArrayVar(&checklistSetFields, "set", nil, "Field to amend, as \"Name=value\" (repeatable)")

	checklistCmd.AddCommand(checklistAddCmd)
	checklistCmd.AddCommand(checklistListCmd)
	checklistCmd.AddCommand(checklistUpdateCmd)
	checklistCmd.AddCommand(checklistClearCmd)
	rootCmd.AddCommand(checklistCmd)
}

func runChecklistAdd(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if checklistService == nil {
		return errors.New("checklist service not configured")
	}

	record, err := checklistService.Create(context.Background(), domain.ChecklistRecord{
		ID:           checklistInput.id,
		Location:     checklistInput.location,
		Element:      checklistInput.element,
		DetectorName: checklistInput.detector,
		Date:         checklistInput.date,
		Rating:       checklistInput.rating,
		Comment:      checklistInput.comment,
	})
	if err != nil {
		return fmt.Errorf("failed to create checklist record: %w", err)
	}

	cmd.Printf("Checklist record %s created.\n", record.ID)
	return nil
}

func runChecklistList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if checklistService == nil {
		return errors.New("checklist service not configured")
	}

	records, err := checklistService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list checklist records: %w", err)
	}

	if len(records) == 0 {
		cmd.Println("No checklist records.")
		return nil
	}

	for _, r := range records {
		cmd.Printf("  %s  [%d] %s / %s", r.ID, r.Rating, r.Location, r.Element)
		if r.Date != "" {
			cmd.Printf("  (%s)", r.Date)
		}
		cmd.Println()
		if r.Comment != "" {
			cmd.Printf("      %s\n", r.Comment)
		}
	}
	cmd.Printf("Total: %d records\n", len(records))
	return nil
}

func runChecklistUpdate(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if checklistService == nil {
		return errors.New("checklist service not configured")
	}

	fields, err := parseSetFields(checklistSetFields)
	if err != nil {
		return err
	}

	record, err := checklistService.Update(context.Background(), args[0], fields)
	if err != nil {
		return fmt.Errorf("failed to update checklist record: %w", err)
	}

	cmd.Printf("Checklist record %s updated.\n", record.ID)
	return nil
}

func runChecklistClear(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if checklistService == nil {
		return errors.New("checklist service not configured")
	}

	if err := checklistService.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear checklist: %w", err)
	}

	cmd.Println("Checklist cleared; stored images removed.")
	return nil
}
