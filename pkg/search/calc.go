package search

import (
	"context"
	"strings"
)

func (s *Searcher) searchCalcMode(ctx context.Context, expr string) []Result {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return []Result{
			{
				Name:    "Calculator",
				GUI:     false,
				Type:    "calc",
				Source:  "internal",
				Comment: "Usage: :calc 5*0x10, 255 in hex, 017+1, rsin(pi/2), rasin(0.5), 5!",
				Command: "",
			},
		}
	}
	return s.calcResults(ctx, strings.Fields(expr))
}

func (s *Searcher) calcResults(ctx context.Context, terms []string) []Result {
	out := []Result{}
	for _, res := range s.Calc.Results(ctx, terms) {
		out = append(out, Result{
			Name:    res.Result,
			GUI:     false,
			Type:    "calc",
			Source:  "calculator",
			Icon:    s.Icon,
			Command: s.copyCommand(res.Result),
			Comment: res.Expression,
		})
	}
	return out
}

func (s *Searcher) copyCommand(result string) string {
	if s.CopyCommand == "" {
		return ""
	}
	return s.CopyCommand + " " + shellEscape(result)
}
