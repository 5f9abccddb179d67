// Package services implements the core application logic: the document
// adapter over the remote file store, the image store, and the record
// repositories for checklists, work orders, completed orders and the
// change log.
//
// Services depend only on domain types and driven ports. They are
// constructed once per session and injected into the CLI adapter.
package services
