package domain

// DocumentKind identifies one of the four logical JSON documents held
// in the backing repository. Any other value is unsupported.
type DocumentKind string

const (
	// KindChecklist holds inspection checklist observations.
	KindChecklist DocumentKind = "checklist"

	// KindWorkOrders holds open work orders for defective items.
	KindWorkOrders DocumentKind = "work_orders"

	// KindCompletedOrders holds archived, finished work orders.
	KindCompletedOrders DocumentKind = "completed_orders"

	// KindChangeLog holds repair-date modification audit entries.
	KindChangeLog DocumentKind = "change_log"
)

// Kinds returns every supported document kind.
func Kinds() []DocumentKind {
	return []DocumentKind{KindChecklist, KindWorkOrders, KindCompletedOrders, KindChangeLog}
}

// Valid reports whether k is one of the four supported documents.
func (k DocumentKind) Valid() bool {
	switch k {
	case KindChecklist, KindWorkOrders, KindCompletedOrders, KindChangeLog:
		return true
	}
	return false
}

// Path returns the file path of the document in the backing repository.
func (k DocumentKind) Path() string {
	return string(k) + ".json"
}

// CollectionKey returns the JSON key under which the document's record
// collection is stored.
func (k DocumentKind) CollectionKey() string {
	switch k {
	case KindChecklist:
		return "check"
	case KindWorkOrders:
		return "records"
	case KindCompletedOrders:
		return "completed"
	case KindChangeLog:
		return "logs"
	}
	return ""
}

// ChecklistDocument is the container persisted at checklist.json.
type ChecklistDocument struct {
	Check []ChecklistRecord `json:"check"`
}

// WorkOrderDocument is the container persisted at work_orders.json.
type WorkOrderDocument struct {
	Records []WorkOrder `json:"records"`
}

// CompletedOrderDocument is the container persisted at completed_orders.json.
type CompletedOrderDocument struct {
	Completed []CompletedWorkOrder `json:"completed"`
}

// ChangeLogDocument is the container persisted at change_log.json.
type ChangeLogDocument struct {
	Logs []ChangeLogEntry `json:"logs"`
}

// The default empty shapes below use non-nil slices so a fresh document
// always serialises as {"<key>": []}, never as null.

// NewChecklistDocument returns the default empty checklist document.
func NewChecklistDocument() *ChecklistDocument {
	return &ChecklistDocument{Check: []ChecklistRecord{}}
}

// NewWorkOrderDocument returns the default empty work order document.
func NewWorkOrderDocument() *WorkOrderDocument {
	return &WorkOrderDocument{Records: []WorkOrder{}}
}

// NewCompletedOrderDocument returns the default empty completed order document.
func NewCompletedOrderDocument() *CompletedOrderDocument {
	return &CompletedOrderDocument{Completed: []CompletedWorkOrder{}}
}

// NewChangeLogDocument returns the default empty change log document.
func NewChangeLogDocument() *ChangeLogDocument {
	return &ChangeLogDocument{Logs: []ChangeLogEntry{}}
}

// Normalise re-establishes the non-nil collection invariant after
// decoding a document whose collection key was absent or null.
func (d *ChecklistDocument) Normalise() {
	if d.Check == nil {
		d.Check = []ChecklistRecord{}
	}
}

// Normalise re-establishes the non-nil collection invariant.
func (d *WorkOrderDocument) Normalise() {
	if d.Records == nil {
		d.Records = []WorkOrder{}
	}
}

// Normalise re-establishes the non-nil collection invariant.
func (d *CompletedOrderDocument) Normalise() {
	if d.Completed == nil {
		d.Completed = []CompletedWorkOrder{}
	}
}

// Normalise re-establishes the non-nil collection invariant.
func (d *ChangeLogDocument) Normalise() {
	if d.Logs == nil {
		d.Logs = []ChangeLogEntry{}
	}
}
