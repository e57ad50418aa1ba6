// Package core provides a small, stable facade over codegate's internal
// packages for external integrations. It deliberately re-exports a narrow
// API surface so agent harnesses and CI tooling can depend on a stable
// import path without exposing internal implementation packages.
//
// Example:
//
//	report, err := core.ScanTree(ctx, core.Config{Root: "."})
//	if err != nil { /* handle */ }
//	_ = core.MarshalReport(os.Stdout, report)
package core
