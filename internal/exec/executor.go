// Package exec wraps subprocess execution so callers can swap in a
// recording mock during tests.
package exec

import (
	"context"
	"fmt"
	"os/exec"
	"slices"
	"strings"
	"sync"
)

// CommandExecutor runs an external program to completion.
type CommandExecutor interface {
	// CombinedOutput runs name with args and returns stdout and stderr interleaved.
	CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error)
}

// RealExecutor executes commands using os/exec.
type RealExecutor struct{}

func NewRealExecutor() *RealExecutor {
	return &RealExecutor{}
}

func (e *RealExecutor) CombinedOutput(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Run executes a command and folds its output into the returned error on failure.
func Run(ctx context.Context, e CommandExecutor, name string, args ...string) error {
	out, err := e.CombinedOutput(ctx, name, args...)
	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg == "" {
			return fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
		}
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, msg)
	}
	return nil
}

// MockResponse defines the response for a mocked command.
type MockResponse struct {
	Output []byte
	Err    error
	// Do runs before the response is returned, e.g. to write the file a real tool would produce.
	Do func(name string, args []string) error
}

// CommandMatcher reports whether a rule applies to a command.
type CommandMatcher func(name string, args []string) bool

type MockRule struct {
	Match    CommandMatcher
	Response MockResponse
}

// MockCall records a command invocation for verification.
type MockCall struct {
	Name string
	Args []string
}

// MockExecutor returns pre-recorded responses for commands.
// Rules are matched in registration order; unmatched commands succeed with no output.
type MockExecutor struct {
	mu    sync.Mutex
	rules []MockRule
	calls []MockCall
}

func NewMockExecutor() *MockExecutor {
	return &MockExecutor{}
}

func (e *MockExecutor) AddRule(match CommandMatcher, response MockResponse) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, MockRule{Match: match, Response: response})
}

// AddProgram adds a rule matching every invocation of name.
func (e *MockExecutor) AddProgram(name string, response MockResponse) {
	e.AddRule(func(n string, _ []string) bool {
		return n == name
	}, response)
}

// AddExactMatch adds a rule that matches a specific command exactly.
func (e *MockExecutor) AddExactMatch(name string, args []string, response MockResponse) {
	e.AddRule(func(n string, a []string) bool {
		return n == name && slices.Equal(a, args)
	}, response)
}

// Calls returns all recorded command invocations.
func (e *MockExecutor) Calls() []MockCall {
	e.mu.Lock()
	defer e.mu.Unlock()
	calls := make([]MockCall, len(e.calls))
	copy(calls, e.calls)
	return calls
}

// CallsTo returns the recorded invocations of name.
func (e *MockExecutor) CallsTo(name string) []MockCall {
	var out []MockCall
	for _, c := range e.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (e *MockExecutor) CombinedOutput(_ context.Context, name string, args ...string) ([]byte, error) {
	e.mu.Lock()
	e.calls = append(e.calls, MockCall{Name: name, Args: slices.Clone(args)})
	var resp *MockResponse
	for i := range e.rules {
		if e.rules[i].Match(name, args) {
			resp = &e.rules[i].Response
			break
		}
	}
	e.mu.Unlock()

	if resp == nil {
		return nil, nil
	}

	if resp.Do != nil {
		if err := resp.Do(name, args); err != nil {
			return resp.Output, err
		}
	}

	return resp.Output, resp.Err
}

var _ CommandExecutor = (*RealExecutor)(nil)
var _ CommandExecutor = (*MockExecutor)(nil)
