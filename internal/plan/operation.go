// Package plan turns a validated configuration into an ordered list of file
// operations, partitioned into named phases for progress reporting.
//
// Compilation is pure: the same configuration always produces the same plan,
// and no filesystem access happens until the executor runs it.
package plan

import "fmt"

// Operation is one atomic filesystem effect. Operations are immutable once
// constructed; DestPath is always relative to the target root.
type Operation interface {
	// Dest returns the destination path relative to the target root.
	Dest() string
	// Description returns a human-readable description for progress output.
	Description() string
}

// RenderOp renders an embedded template into a file.
type RenderOp struct {
	// TemplateID is the logical template identifier (render package path).
	TemplateID string
	// DestPath is the output path relative to the target root.
	DestPath string
	// Context is the data passed to the template.
	Context any
}

func (op RenderOp) Dest() string { return op.DestPath }

func (op RenderOp) Description() string {
	return fmt.Sprintf("Render %s", op.DestPath)
}

// CopyOp copies an embedded static asset into a file.
type CopyOp struct {
	// Source is the static asset identifier.
	Source string
	// DestPath is the output path relative to the target root.
	DestPath string
}

func (op CopyOp) Dest() string { return op.DestPath }

func (op CopyOp) Description() string {
	return fmt.Sprintf("Copy %s", op.DestPath)
}

// MkdirOp creates an empty directory.
type MkdirOp struct {
	// DestPath is the directory path relative to the target root.
	DestPath string
}

func (op MkdirOp) Dest() string { return op.DestPath }

func (op MkdirOp) Description() string {
	return fmt.Sprintf("Create directory %s", op.DestPath)
}
