package e2etests

import (
	"fmt"
	"strings"
)

// TestCase defines a named e2e test scenario.
type TestCase struct {
	Name string
	Fn   func(r *Runner, n *Normalizer, sandbox string) (string, error)
}

// TestCases is the ordered registry of all e2e test cases.
var TestCases = []TestCase{
	{"01_create_show", caseCreateShow},
	{"02_status", caseStatus},
	{"03_list", caseList},
	{"04_usage", caseUsage},
	{"05_json", caseJSON},
}

// section writes a section header and content to the builder.
func section(out *strings.Builder, label string, content string) {
	out.WriteString("=== ")
	out.WriteString(label)
	out.WriteString(" ===\n")
	out.WriteString(content)
	out.WriteString("\n\n")
}

// mustRun runs a command and returns the result, failing the test case on error.
func mustRun(r *Runner, sandbox string, args ...string) (RunResult, error) {
	result := r.Run(sandbox, args...)
	if result.ExitCode != 0 {
		return result, fmt.Errorf("command %v failed (exit %d): %s", args, result.ExitCode, result.Stderr)
	}
	return result, nil
}

// runSections runs each command in order and records its normalized stdout.
func runSections(r *Runner, n *Normalizer, sandbox string, steps []step) (string, error) {
	var out strings.Builder
	for _, s := range steps {
		result, err := mustRun(r, sandbox, s.args...)
		if err != nil {
			return "", err
		}
		if s.json {
			section(&out, s.label, n.NormalizeJSON([]byte(result.Stdout)))
		} else {
			section(&out, s.label, n.NormalizeText(result.Stdout))
		}
	}
	return out.String(), nil
}

type step struct {
	label string
	args  []string
	json  bool
}

// 01: Create an issue and show it by short and padded ID.
func caseCreateShow(r *Runner, n *Normalizer, sandbox string) (string, error) {
	return runSections(r, n, sandbox, []step{
		{label: "create", args: []string{"create", "Fix", "login", "bug"}},
		{label: "show by short id", args: []string{"show", "1"}},
		{label: "show by padded id", args: []string{"show", "001"}},
		{label: "show missing", args: []string{"show", "42"}},
	})
}

// 02: Move an issue through statuses, including rejected input.
func caseStatus(r *Runner, n *Normalizer, sandbox string) (string, error) {
	return runSections(r, n, sandbox, []step{
		{label: "create", args: []string{"create", "Write docs"}},
		{label: "start", args: []string{"status", "1", "in_progress"}},
		{label: "invalid status", args: []string{"status", "1", "bogus"}},
		{label: "missing issue", args: []string{"status", "9", "done"}},
		{label: "finish", args: []string{"status", "001", "done"}},
		{label: "show", args: []string{"show", "1"}},
	})
}

// 03: List with and without a status filter.
func caseList(r *Runner, n *Normalizer, sandbox string) (string, error) {
	return runSections(r, n, sandbox, []step{
		{label: "list empty", args: []string{"list"}},
		{label: "create first", args: []string{"create", "Fix login bug"}},
		{label: "create second", args: []string{"create", "Add OAuth support"}},
		{label: "create third", args: []string{"create", "Refactor the session store so that tokens expire correctly"}},
		{label: "review second", args: []string{"status", "2", "review"}},
		{label: "list all", args: []string{"list"}},
		{label: "list review", args: []string{"list", "--status=review"}},
		{label: "list unknown status", args: []string{"list", "--status=someday"}},
	})
}

// 04: Anything that is not a command prints the usage text.
func caseUsage(r *Runner, n *Normalizer, sandbox string) (string, error) {
	return runSections(r, n, sandbox, []step{
		{label: "no arguments", args: nil},
		{label: "unknown command", args: []string{"frobnicate"}},
	})
}

// 05: JSON output for create, status and list.
func caseJSON(r *Runner, n *Normalizer, sandbox string) (string, error) {
	return runSections(r, n, sandbox, []step{
		{label: "create", args: []string{"--json", "create", "JSON issue"}, json: true},
		{label: "status", args: []string{"--json", "status", "1", "blocked"}, json: true},
		{label: "status missing", args: []string{"--json", "status", "7", "done"}, json: true},
		{label: "list", args: []string{"--json", "list"}, json: true},
	})
}
