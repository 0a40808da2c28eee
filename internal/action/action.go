// Package action adapts a merge run to a GitHub Actions step: inputs come
// from INPUT_* variables, progress goes to the workflow log, and results are
// published as step outputs and a job summary.
package action

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strconv"
	"strings"

	"unibin/internal/universal"

	"github.com/sethvargo/go-githubactions"
)

const (
	InputFolder1 = "folder1"
	InputFolder2 = "folder2"
	InputOutput  = "output"

	OutputMergedCount = "merged-count"
	OutputPath        = "output"

	envStepSummary = "GITHUB_STEP_SUMMARY"
)

type Inputs struct {
	Folder1 string
	Folder2 string
	Output  string
}

type Host struct {
	action *githubactions.Action
	getenv func(string) string
}

// New returns a Host writing workflow commands to w. A nil getenv reads the process environment.
func New(w io.Writer, getenv func(string) string) *Host {
	if getenv == nil {
		getenv = os.Getenv
	}
	if w == nil {
		w = os.Stdout
	}

	return &Host{
		action: githubactions.New(
			githubactions.WithWriter(w),
			githubactions.WithGetenv(getenv),
		),
		getenv: getenv,
	}
}

// Inputs reads the three required inputs.
func (h *Host) Inputs() (Inputs, error) {
	in := Inputs{
		Folder1: h.action.GetInput(InputFolder1),
		Folder2: h.action.GetInput(InputFolder2),
		Output:  h.action.GetInput(InputOutput),
	}

	var missing []string
	for name, v := range map[string]string{
		InputFolder1: in.Folder1,
		InputFolder2: in.Folder2,
		InputOutput:  in.Output,
	} {
		if v == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return in, fmt.Errorf("missing required input: %s", strings.Join(missing, ", "))
	}

	return in, nil
}

func (h *Host) Infof(format string, args ...any) {
	h.action.Infof(format, args...)
}

// Fail marks the step as failed with err's message. The caller decides the exit code.
func (h *Host) Fail(err error) {
	h.action.Errorf("%s", err.Error())
}

func (h *Host) Publish(in Inputs, report *universal.Report) {
	h.action.SetOutput(OutputMergedCount, strconv.Itoa(len(report.Merged)))
	h.action.SetOutput(OutputPath, in.Output)

	if h.getenv(envStepSummary) == "" {
		return
	}
	h.action.AddStepSummary(Summary(in, report))
}

// Summary renders the job summary markdown for a run.
func Summary(in Inputs, report *universal.Report) string {
	var b strings.Builder
	b.WriteString("## Universal binaries\n\n")
	fmt.Fprintf(&b, "`%s` + `%s` → `%s`\n\n", in.Folder1, in.Folder2, in.Output)

	if report.Stage != universal.StageDone {
		fmt.Fprintf(&b, "Failed while %s.\n\n", report.Stage)
	}

	fmt.Fprintf(&b, "| Copied files | Copied links | Merged | Left as copied |\n")
	fmt.Fprintf(&b, "|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d |\n", report.Copied.Files, report.Copied.Symlinks, len(report.Merged), report.Skipped)

	if len(report.Merged) > 0 {
		b.WriteString("\n<details><summary>Merged binaries</summary>\n\n")
		for _, rel := range report.Merged {
			fmt.Fprintf(&b, "- `%s`\n", rel)
		}
		b.WriteString("\n</details>\n")
	}

	return b.String()
}
