package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sitecheck-cli/internal/core/domain"
)

// dateTimeLayout is the timestamp format stored in the documents.
const dateTimeLayout = "2006-01-02 15:04:05"

var workOrderCmd = &cobra.Command{
	Use:   "workorder",
	Short: "Manage work orders for defective items",
	Long: `Escalate defects into work orders, amend them, archive finished
repairs and list open or completed orders.`,
}

var workOrderAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a work order",
	RunE:  runWorkOrderAdd,
}

var workOrderListCmd = &cobra.Command{
	Use:   "list",
	Short: "List open work orders",
	RunE:  runWorkOrderList,
}

var workOrderCompletedCmd = &cobra.Command{
	Use:   "completed",
	Short: "List archived work orders",
	RunE:  runWorkOrderCompleted,
}

var workOrderUpdateCmd = &cobra.Command{
	Use:   "update [order-id]",
	Short: "Amend fields of a work order",
	Long: `Amends a work order in place. Fields are addressed by their stored
names. When --modifier is given, a change log entry is recorded for the
modification, e.g.:

  sitecheck workorder update 3 --set "Actual Repair Date=2024-01-01 00:00:00" --modifier "R. Vane"`,
	Args: cobra.ExactArgs(1),
	RunE: runWorkOrderUpdate,
}

var workOrderCompleteCmd = &cobra.Command{
	Use:   "complete [order-id]",
	Short: "Archive a work order as completed",
	Args:  cobra.ExactArgs(1),
	RunE:  runWorkOrderComplete,
}

var workOrderClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Reset the work order document",
	RunE:  runWorkOrderClear,
}

// Flags for workorder add.
var workOrderInput struct {
	id          string
	location    string
	element     string
	detector    string
	date        string
	rating      int
	responsible string
	expected    string
	actual      string
	comment     string
	safety      bool
	quality     bool
	imagePath   string
}

var (
	// workOrderSetFields holds repeated --set pairs for update.
	workOrderSetFields []string

	// workOrderModifier attributes the update in the change log.
	workOrderModifier string

	// workOrderActualDate stamps the archived order on complete.
	workOrderActualDate string
)

func init() {
	flags := workOrderAddCmd.Flags()
	flags.StringVar(&workOrderInput.id, "id", "", "Order id (assigned automatically when omitted)")
	flags.StringVar(&workOrderInput.location, "location", "", "Defect location")
	flags.StringVar(&workOrderInput.element, "element", "", "Defective element")
	flags.StringVar(&workOrderInput.detector, "detector", "", "Name of the person who detected the defect")
	flags.StringVar(&workOrderInput.date, "date", "", "Detection date")
	flags.IntVar(&workOrderInput.rating, "rating", 0, "Condition rating")
	flags.StringVar(&workOrderInput.responsible, "responsible", "", "Person responsible for the repair")
	flags.StringVar(&workOrderInput.expected, "expected", "", "Expected repair date")
	flags.StringVar(&workOrderInput.actual, "actual", "", "Actual repair date")
	flags.StringVar(&workOrderInput.comment, "comment", "", "Free-text comment")
	flags.BoolVar(&workOrderInput.safety, "safety", false, "Mark the defect safety related")
	flags.BoolVar(&workOrderInput.quality, "quality", false, "Mark the defect quality related")
	flags.StringVar(&workOrderInput.imagePath, "image", "", "Path to a defect photo to attach")

	workOrderUpdateCmd.Flags().StringArrayVar(&workOrderSetFields, "set", nil, "Field to amend, as \"Name=value\" (repeatable)")
	workOrderUpdateCmd.Flags().StringVar(&workOrderModifier, "modifier", "", "Record the change in the change log under this name")

	workOrderCompleteCmd.Flags().StringVar(&workOrderActualDate, "actual-date", "", "Actual repair date to stamp (defaults to now)")

	workOrderCmd.AddCommand(workOrderAddCmd)
	workOrderCmd.AddCommand(workOrderListCmd)
	workOrderCmd.AddCommand(workOrderCompletedCmd)
	workOrderCmd.AddCommand(workOrderUpdateCmd)
	workOrderCmd.AddCommand(workOrderCompleteCmd)
	workOrderCmd.AddCommand(workOrderClearCmd)
	rootCmd.AddCommand(workOrderCmd)
}

func runWorkOrderAdd(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if workOrderService == nil {
		return errors.New("work order service not configured")
	}

	var image []byte
	if workOrderInput.imagePath != "" {
		data, err := os.ReadFile(workOrderInput.imagePath)
		if err != nil {
			return fmt.Errorf("read image: %w", err)
		}
		image = data
	}

	order, err := workOrderService.Create(context.Background(), domain.WorkOrder{
		ID:                 workOrderInput.id,
		Location:           workOrderInput.location,
		Element:            workOrderInput.element,
		DetectorName:       workOrderInput.detector,
		Date:               workOrderInput.date,
		Rating:             workOrderInput.rating,
		ResponsiblePerson:  workOrderInput.responsible,
		ExpectedRepairDate: workOrderInput.expected,
		ActualRepairDate:   workOrderInput.actual,
		Comment:            workOrderInput.comment,
		SafetyRelated:      flagYesNo(workOrderInput.safety),
		QualityRelated:     flagYesNo(workOrderInput.quality),
	}, image)
	if err != nil {
		return fmt.Errorf("failed to create work order: %w", err)
	}

	cmd.Printf("Work order %s created.\n", order.ID)
	if order.Image != "" {
		cmd.Printf("  Image stored at %s\n", order.Image)
	}
	return nil
}

func runWorkOrderList(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if workOrderService == nil {
		return errors.New("work order service not configured")
	}

	orders, err := workOrderService.List(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list work orders: %w", err)
	}

	if len(orders) == 0 {
		cmd.Println("No open work orders.")
		return nil
	}

	for _, o := range orders {
		cmd.Printf("  %s  [%d] %s / %s", o.ID, o.Rating, o.Location, o.Element)
		if o.ExpectedRepairDate != "" {
			cmd.Printf("  expected %s", o.ExpectedRepairDate)
		}
		if o.ActualRepairDate != "" {
			cmd.Printf("  repaired %s", o.ActualRepairDate)
		}
		cmd.Println()
	}
	cmd.Printf("Total: %d orders\n", len(orders))
	return nil
}

func runWorkOrderCompleted(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if workOrderService == nil {
		return errors.New("work order service not configured")
	}

	orders, err := workOrderService.ListCompleted(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list completed orders: %w", err)
	}

	if len(orders) == 0 {
		cmd.Println("No completed work orders.")
		return nil
	}

	for _, o := range orders {
		cmd.Printf("  %s  %s / %s  repaired %s\n", o.ID, o.Location, o.Element, o.ActualRepairDate)
	}
	cmd.Printf("Total: %d orders\n", len(orders))
	return nil
}

func runWorkOrderUpdate(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if workOrderService == nil {
		return errors.New("work order service not configured")
	}

	fields, err := parseSetFields(workOrderSetFields)
	if err != nil {
		return err
	}

	ctx := context.Background()
	order, err := workOrderService.Update(ctx, args[0], fields)
	if err != nil {
		return fmt.Errorf("failed to update work order: %w", err)
	}
	cmd.Printf("Work order %s updated.\n", order.ID)

	if workOrderModifier != "" {
		if changeLogService == nil {
			return errors.New("change log service not configured")
		}
		entry, err := changeLogService.Create(ctx, changeEntryFor(workOrderModifier, fields))
		if err != nil {
			return fmt.Errorf("failed to record change log entry: %w", err)
		}
		cmd.Printf("Change log entry %s recorded.\n", entry.ID)
	}
	return nil
}

func runWorkOrderComplete(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if workOrderService == nil {
		return errors.New("work order service not configured")
	}

	actual := workOrderActualDate
	if actual == "" {
		actual = time.Now().Format(dateTimeLayout)
	}

	archived, err := workOrderService.Complete(context.Background(), args[0], actual)
	if err != nil {
		return fmt.Errorf("failed to complete work order: %w", err)
	}

	cmd.Printf("Work order %s archived (repaired %s).\n", archived.ID, archived.ActualRepairDate)
	return nil
}

func runWorkOrderClear(cmd *cobra.Command, _ []string) error {
	if err := ensureServices(); err != nil {
		return err
	}
	if workOrderService == nil {
		return errors.New("work order service not configured")
	}

	if err := workOrderService.Clear(context.Background()); err != nil {
		return fmt.Errorf("failed to clear work orders: %w", err)
	}

	cmd.Println("Work orders cleared.")
	return nil
}

// changeEntryFor describes an update in the change log. The entry names
// the amended fields and, when a repair date changed, carries the new
// date.
func changeEntryFor(modifier string, fields map[string]string) domain.ChangeLogEntry {
	names := make([]string, 0, len(fields))
	newDate := ""
	for name, value := range fields {
		names = append(names, name)
		if strings.Contains(name, "Repair Date") {
			newDate = value
		}
	}
	sort.Strings(names)

	return domain.ChangeLogEntry{
		ModifierName:     modifier,
		ModificationDate: time.Now().Format(dateTimeLayout),
		ModificationType: "update " + strings.Join(names, ", "),
		NewDate:          newDate,
	}
}

func flagYesNo(v bool) string {
	if v {
		return "yes"
	}
	return ""
}
