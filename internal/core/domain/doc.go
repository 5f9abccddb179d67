// Package domain defines the core business entities for Sitecheck.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - ChecklistRecord: A single inspection observation
//   - WorkOrder: A defect escalated for repair
//   - CompletedWorkOrder: An archived, finished work order
//   - ChangeLogEntry: An audit entry for repair-date modifications
//   - DocumentKind: The fixed set of remote JSON documents
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
