package output

import "fmt"

// Reporter receives progress events from long-running operations.
//
// The plan executor and the provisioning orchestrator report through this
// interface instead of printing directly, so tests can assert on emitted
// events without capturing process output.
type Reporter interface {
	// PhaseStart signals the beginning of a named phase with its operation count.
	PhaseStart(name string, total int)
	// ItemDone signals one completed item within the current phase.
	ItemDone(description string)
	// Error signals a failure. Reporting an error does not stop the caller.
	Error(description string, err error)
	// Summary signals the end of the whole run.
	Summary(description string)
}

// ConsoleReporter renders progress events with the package styles.
type ConsoleReporter struct{}

func (ConsoleReporter) PhaseStart(name string, total int) {
	Info(fmt.Sprintf("%s (%d operations)", name, total))
}

func (ConsoleReporter) ItemDone(description string) {
	Step("✓ " + description)
}

func (ConsoleReporter) Error(description string, err error) {
	Error(fmt.Sprintf("%s: %v", description, err))
}

func (ConsoleReporter) Summary(description string) {
	Success(description)
}

// NilReporter discards all events. Useful as a default and in tests
// that don't assert on progress output.
type NilReporter struct{}

func (NilReporter) PhaseStart(string, int) {}
func (NilReporter) ItemDone(string)        {}
func (NilReporter) Error(string, error)    {}
func (NilReporter) Summary(string)         {}
