package source

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// AbortPolicy decides what happens after a Diagnostic is reported. The
// default policy (Exit) prints the rendered message and terminates the
// process with exit code 1. Tests substitute a policy
// that records the diagnostic instead of exiting.
type AbortPolicy func(d *Diagnostic, rendered string)

// Manager is the error manager: every Diagnostic
// in the interpreter passes through exactly one Manager, which formats it
// against a Files table and then invokes its AbortPolicy, whatever the
// Diagnostic's category. The io module builds no Diagnostic for its
// failures (it records them in each resource's status fields), but
// read() returns resource-category Diagnostics when stdin has no usable
// line, and those are reported and abort like any other.
type Manager struct {
	Out    io.Writer
	Files  *Files
	Policy AbortPolicy

	// RuntimeID tags this Manager's owning Runtime instance with a random
	// UUID. Report does not print it, so it appears in no output.
	RuntimeID uuid.UUID

	// reported records every diagnostic seen, for abort policies (like the
	// test policy) that don't exit the process and need to inspect history.
	reported []*Diagnostic
}

// NewManager creates a Manager whose Out receives the program's own
// output (print writes there) and which aborts the process on every
// Report call, per the default policy described above.
func NewManager(out io.Writer, files *Files) *Manager {
	m := &Manager{Out: out, Files: files, RuntimeID: uuid.New()}
	m.Policy = m.exitPolicy
	return m
}

// NewTestManager creates a Manager whose AbortPolicy records diagnostics
// instead of exiting, so unit tests can assert on reported errors.
func NewTestManager(out io.Writer, files *Files) *Manager {
	m := &Manager{Out: out, Files: files, RuntimeID: uuid.New()}
	m.Policy = func(*Diagnostic, string) {}
	return m
}

// Report renders d, writes it to stderr, and hands it to the configured
// AbortPolicy. By default this exits the process; construct the Manager
// with NewTestManager to observe diagnostics without aborting.
func (m *Manager) Report(d *Diagnostic) {
	rendered := d.Render(m.Files)
	m.reported = append(m.reported, d)
	fmt.Fprintln(os.Stderr, rendered)
	m.Policy(d, rendered)
}

// Reported returns every diagnostic seen so far, oldest first.
func (m *Manager) Reported() []*Diagnostic {
	return m.reported
}

func (m *Manager) exitPolicy(*Diagnostic, string) {
	os.Exit(1)
}
