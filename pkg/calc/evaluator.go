package calc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/google/shlex"
)

// DefaultCommand solves a single expression with GNOME Calculator. The older
// "gcalctool -s" takes the same flag.
const DefaultCommand = "gnome-calculator -s"

// Evaluator computes a normalized expression and returns the decimal text.
type Evaluator interface {
	Evaluate(ctx context.Context, expr string) (string, error)
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, expr string) (string, error)

func (f EvaluatorFunc) Evaluate(ctx context.Context, expr string) (string, error) {
	return f(ctx, expr)
}

// ProcessEvaluator runs an external calculator with the expression as its last
// argument and reads the result from stdout. Surrounding whitespace, including
// the trailing newline, is trimmed from the output; the rest is returned as is.
type ProcessEvaluator struct {
	Path string
	Args []string
	// Timeout bounds one invocation. Zero waits for the process however long
	// it takes.
	Timeout time.Duration
}

// NewProcessEvaluator splits a shell-style command line such as
// "gnome-calculator -s" into program and flags.
func NewProcessEvaluator(command string, timeout time.Duration) (*ProcessEvaluator, error) {
	argv, err := shlex.Split(command)
	if err != nil {
		return nil, fmt.Errorf("parse evaluator command %q: %w", command, err)
	}
	if len(argv) == 0 {
		return nil, errors.New("evaluator command is empty")
	}
	return &ProcessEvaluator{Path: argv[0], Args: argv[1:], Timeout: timeout}, nil
}

func (p *ProcessEvaluator) Evaluate(ctx context.Context, expr string) (string, error) {
	if p.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.Timeout)
		defer cancel()
	}

	args := append(append([]string{}, p.Args...), expr)
	cmd := exec.CommandContext(ctx, p.Path, args...)
	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return "", evalError(expr, err)
	}

	result := strings.TrimSpace(out.String())
	if result == "" {
		return "", evalError(expr, errors.New("no output"))
	}
	return result, nil
}

func (p *ProcessEvaluator) String() string {
	return strings.Join(append([]string{p.Path}, p.Args...), " ")
}
