package calc

import (
	"errors"
	"fmt"
)

var (
	// ErrRejected means the query did not look like an expression.
	ErrRejected = errors.New("not an expression")
	// ErrEvaluation means the evaluator could not produce a result.
	ErrEvaluation = errors.New("evaluation failed")
)

// EvalError carries the cause of a failed evaluation. It matches
// ErrEvaluation with errors.Is.
type EvalError struct {
	Expression string
	Err        error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluate %q: %v", e.Expression, e.Err)
}

func (e *EvalError) Unwrap() error { return e.Err }

func (e *EvalError) Is(target error) bool { return target == ErrEvaluation }

func evalError(expr string, err error) error {
	return &EvalError{Expression: expr, Err: err}
}
