package domain

import (
	"fmt"
	"strconv"
)

// The JSON keys below (including the spaced and mixed-case ones) are the
// exact keys already present in backing repositories. They are part of
// the persisted format and must not be renamed.

// ChecklistRecord is a single inspection observation.
type ChecklistRecord struct {
	ID           string `json:"id"`
	Location     string `json:"Location"`
	Element      string `json:"Element"`
	DetectorName string `json:"Detector Name"`
	Date         string `json:"Date"`
	Rating       int    `json:"Rating"`
	Comment      string `json:"Comment"`
}

// WorkOrder is a defective item escalated for repair.
type WorkOrder struct {
	ID                 string `json:"id"`
	Location           string `json:"Location"`
	Element            string `json:"Element"`
	DetectorName       string `json:"Detector Name"`
	Date               string `json:"Date"`
	Rating             int    `json:"Rating"`
	ResponsiblePerson  string `json:"Responsible Person"`
	ExpectedRepairDate string `json:"Expected Repair Date"`
	ActualRepairDate   string `json:"Actual Repair Date"`
	Image              string `json:"Image"`
	Comment            string `json:"Comment"`
	SafetyRelated      string `json:"Safety related"`
	QualityRelated     string `json:"Quality related"`
}

// CompletedWorkOrder is an archived work order. The lowercase
// location/element/image/comment keys mirror the completed document's
// historical shape.
type CompletedWorkOrder struct {
	ID                 string `json:"id"`
	Location           string `json:"location"`
	Element            string `json:"element"`
	DetectorName       string `json:"Detector Name"`
	Date               string `json:"Date"`
	Rating             int    `json:"Rating"`
	ResponsiblePerson  string `json:"Responsible Person"`
	ExpectedRepairDate string `json:"Expected Repair Date"`
	ActualRepairDate   string `json:"Actual Repair Date"`
	Image              string `json:"image"`
	Comment            string `json:"comment"`
	SafetyRelated      string `json:"Safety related"`
	QualityRelated     string `json:"Quality related"`
}

// ChangeLogEntry records a repair-date modification.
type ChangeLogEntry struct {
	ID               string `json:"id"`
	ModifierName     string `json:"Modifier Name"`
	ModificationDate string `json:"Modification Date"`
	ModificationType string `json:"Modification Type"`
	NewDate          string `json:"New Date"`
}

// CompleteWorkOrder converts an open work order into its archived form.
// The record id is carried over; ids are scoped per document.
func CompleteWorkOrder(o WorkOrder) CompletedWorkOrder {
	return CompletedWorkOrder{
		ID:                 o.ID,
		Location:           o.Location,
		Element:            o.Element,
		DetectorName:       o.DetectorName,
		Date:               o.Date,
		Rating:             o.Rating,
		ResponsiblePerson:  o.ResponsiblePerson,
		ExpectedRepairDate: o.ExpectedRepairDate,
		ActualRepairDate:   o.ActualRepairDate,
		Image:              o.Image,
		Comment:            o.Comment,
		SafetyRelated:      o.SafetyRelated,
		QualityRelated:     o.QualityRelated,
	}
}

// Apply merges the supplied fields into the record. Fields are addressed
// by their persisted JSON keys. Naming a field outside the schema is an
// error rather than a silent extension of the record.
func (r *ChecklistRecord) Apply(fields map[string]string) error {
	for key, value := range fields {
		switch key {
		case "id":
			r.ID = value
		case "Location":
			r.Location = value
		case "Element":
			r.Element = value
		case "Detector Name":
			r.DetectorName = value
		case "Date":
			r.Date = value
		case "Rating":
			rating, err := parseRating(value)
			if err != nil {
				return err
			}
			r.Rating = rating
		case "Comment":
			r.Comment = value
		default:
			return fmt.Errorf("checklist record: %w: %q", ErrUnknownField, key)
		}
	}
	return nil
}

// Apply merges the supplied fields into the work order.
func (r *WorkOrder) Apply(fields map[string]string) error {
	for key, value := range fields {
		switch key {
		case "id":
			r.ID = value
		case "Location":
			r.Location = value
		case "Element":
			r.Element = value
		case "Detector Name":
			r.DetectorName = value
		case "Date":
			r.Date = value
		case "Rating":
			rating, err := parseRating(value)
			if err != nil {
				return err
			}
			r.Rating = rating
		case "Responsible Person":
			r.ResponsiblePerson = value
		case "Expected Repair Date":
			r.ExpectedRepairDate = value
		case "Actual Repair Date":
			r.ActualRepairDate = value
		case "Image":
			r.Image = value
		case "Comment":
			r.Comment = value
		case "Safety related":
			r.SafetyRelated = value
		case "Quality related":
			r.QualityRelated = value
		default:
			return fmt.Errorf("work order: %w: %q", ErrUnknownField, key)
		}
	}
	return nil
}

// Apply merges the supplied fields into the archived order.
func (r *CompletedWorkOrder) Apply(fields map[string]string) error {
	for key, value := range fields {
		switch key {
		case "id":
			r.ID = value
		case "location":
			r.Location = value
		case "element":
			r.Element = value
		case "Detector Name":
			r.DetectorName = value
		case "Date":
			r.Date = value
		case "Rating":
			rating, err := parseRating(value)
			if err != nil {
				return err
			}
			r.Rating = rating
		case "Responsible Person":
			r.ResponsiblePerson = value
		case "Expected Repair Date":
			r.ExpectedRepairDate = value
		case "Actual Repair Date":
			r.ActualRepairDate = value
		case "image":
			r.Image = value
		case "comment":
			r.Comment = value
		case "Safety related":
			r.SafetyRelated = value
		case "Quality related":
			r.QualityRelated = value
		default:
			return fmt.Errorf("completed work order: %w: %q", ErrUnknownField, key)
		}
	}
	return nil
}

// Apply merges the supplied fields into the change log entry.
func (r *ChangeLogEntry) Apply(fields map[string]string) error {
	for key, value := range fields {
		switch key {
		case "id":
			r.ID = value
		case "Modifier Name":
			r.ModifierName = value
		case "Modification Date":
			r.ModificationDate = value
		case "Modification Type":
			r.ModificationType = value
		case "New Date":
			r.NewDate = value
		default:
			return fmt.Errorf("change log entry: %w: %q", ErrUnknownField, key)
		}
	}
	return nil
}

func parseRating(value string) (int, error) {
	if value == "" {
		return 0, nil
	}
	rating, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: Rating must be an integer, got %q", ErrInvalidInput, value)
	}
	return rating, nil
}

// NextID derives the sequential string identifier assigned to a record
// appended to a collection that currently holds count records. Ids are
// scoped per document and are not reused-safe across deletions; writers
// are expected to route through the document store's conflict-retried
// mutate loop.
func NextID(count int) string {
	return strconv.Itoa(count + 1)
}
