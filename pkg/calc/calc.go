// Package calc turns search terms into calculator results: it normalizes the
// typed shorthand, hands the expression to an evaluator and re-bases the
// decimal answer when the query asked for hex, octal or binary.
package calc

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// DisplayResult is one answer ready for display.
type DisplayResult struct {
	ID         string `json:"id"`
	Seq        uint64 `json:"seq"`
	Expression string `json:"expression"`
	Result     string `json:"result"`
}

// Calculator runs the normalize, evaluate and rebase pipeline. It keeps no
// state between queries other than the sequence counter.
type Calculator struct {
	mu     sync.RWMutex
	eval   Evaluator
	logger *slog.Logger
	seq    atomic.Uint64
}

func New(eval Evaluator, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{eval: eval, logger: logger}
}

// SetEvaluator swaps the evaluator for later queries. Queries already running
// keep the one they started with.
func (c *Calculator) SetEvaluator(eval Evaluator) {
	c.mu.Lock()
	c.eval = eval
	c.mu.Unlock()
}

func (c *Calculator) evaluator() Evaluator {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.eval
}

// Query evaluates the terms. It returns ErrRejected for input that is not an
// expression and an error matching ErrEvaluation when the evaluator or the
// rebase step fails. Each success carries a fresh ID and a Seq taken when the
// query started, so a later query always has the larger Seq even if it
// finishes first.
func (c *Calculator) Query(ctx context.Context, terms []string) (DisplayResult, error) {
	seq := c.seq.Add(1)
	norm, err := Normalize(terms)
	if err != nil {
		c.logger.Debug("query rejected", "terms", terms)
		return DisplayResult{}, err
	}

	out, err := c.evaluator().Evaluate(ctx, norm.Expression)
	if err != nil {
		c.logger.Debug("evaluation failed", "expr", norm.Expression, "err", err)
		return DisplayResult{}, err
	}

	result := out
	if norm.Directive != DirectiveNone {
		result, err = Rebase(out, norm.Directive.Radix())
		if err != nil {
			c.logger.Debug("rebase failed", "output", out, "radix", norm.Directive.Radix(), "err", err)
			return DisplayResult{}, evalError(norm.Expression, err)
		}
	}

	return DisplayResult{
		ID:         uuid.NewString(),
		Seq:        seq,
		Expression: norm.Expression,
		Result:     result,
	}, nil
}

// Results is Query shaped as a result set: zero or one entries, never an error.
func (c *Calculator) Results(ctx context.Context, terms []string) []DisplayResult {
	res, err := c.Query(ctx, terms)
	if err != nil {
		return nil
	}
	return []DisplayResult{res}
}
