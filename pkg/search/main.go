package search

import (
	"context"
	"io"
	"strings"

	"github.com/hoppxi/wigo-calc/pkg/calc"
)

type Result struct {
	Name    string `json:"name"`
	GUI     bool   `json:"gui"`
	Type    string `json:"type"`
	Source  string `json:"source"`
	Command string `json:"command"`
	Icon    string `json:"icon,omitempty"`
	Comment string `json:"comment,omitempty"`
}

// Searcher answers launcher queries with calculator results.
type Searcher struct {
	Calc *calc.Calculator
	// CopyCommand is the program the launcher runs to copy a result, e.g.
	// "wigo-calc copy".
	CopyCommand string
	Icon        string
	Out         io.Writer
}

// Search prints the launcher JSON for the query. ":calc <expr>" and a bare
// expression both evaluate; ":help" lists the modes.
func (s *Searcher) Search(ctx context.Context, args []string) error {
	term := ""
	if len(args) > 0 {
		term = strings.TrimSpace(strings.Join(args, " "))
	}

	if term == "" {
		return printJSON(s.Out, helpJSON(""))
	}

	toks := strings.Fields(term)
	if strings.HasPrefix(toks[0], ":") {
		mode := strings.ToLower(toks[0])
		query := strings.TrimSpace(strings.TrimPrefix(term, toks[0]))

		switch mode {
		case ":help", ":h":
			return printJSON(s.Out, helpJSON(query))
		case ":cal", ":calc":
			return printJSON(s.Out, s.searchCalcMode(ctx, query))
		}
	}

	// bare input: only show something when it evaluates
	return printJSON(s.Out, s.calcResults(ctx, toks))
}

func helpJSON(term string) []Result {
	helpItems := []Result{
		{Name: "Calculator Search", GUI: false, Type: "help", Source: "internal", Command: ":search"},
		{Name: ":help or :h", GUI: false, Type: "help", Source: "internal", Command: ":help"},
		{Name: ":calc <expression> or :cal <expression>", GUI: false, Type: "help", Source: "calculator", Command: ":calc"},
		{Name: "<expression> in hex|octal|binary", GUI: false, Type: "help", Source: "calculator", Command: ":calc"},
	}

	if term == "" {
		return helpItems
	}

	term = strings.ToLower(term)
	var filtered []Result
	for _, item := range helpItems {
		if strings.Contains(strings.ToLower(item.Name), term) ||
			strings.Contains(strings.ToLower(item.Source), term) ||
			strings.Contains(strings.ToLower(item.Command), term) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}
