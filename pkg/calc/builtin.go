package calc

import (
	"context"
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/knetic/govaluate"
)

var (
	subscriptLiteralRe = regexp.MustCompile(`([0-9A-Fa-f]+)(₁₆|₈|₂)`)
	implicitPiRe       = regexp.MustCompile(`([0-9)])\s*π`)
	factorialRe        = regexp.MustCompile(`([0-9]+(?:\.[0-9]+)?)!`)

	subscriptBases = map[string]int{subscript16: 16, subscript8: 8, subscript2: 2}

	builtinSymbols = strings.NewReplacer("−", "-", "×", "*", "÷", "/", "^", "**", "π", "pi")
)

// maxFactorial is the largest n whose n! fits in a float64.
const maxFactorial = 170

// BuiltinEvaluator evaluates expressions in process with govaluate. It reads
// the same notation the external calculator does and answers in its format,
// so it can stand in when no calculator is installed. Trigonometry works in
// degrees.
type BuiltinEvaluator struct {
	functions map[string]govaluate.ExpressionFunction
}

func NewBuiltinEvaluator() *BuiltinEvaluator {
	deg := math.Pi / 180
	unary := func(f func(float64) float64) govaluate.ExpressionFunction {
		return func(args ...any) (any, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
			}
			return f(toFloat64(args[0])), nil
		}
	}

	return &BuiltinEvaluator{functions: map[string]govaluate.ExpressionFunction{
		"sin":   unary(func(x float64) float64 { return math.Sin(x * deg) }),
		"cos":   unary(func(x float64) float64 { return math.Cos(x * deg) }),
		"tan":   unary(func(x float64) float64 { return math.Tan(x * deg) }),
		"asin":  unary(func(x float64) float64 { return math.Asin(x) / deg }),
		"acos":  unary(func(x float64) float64 { return math.Acos(x) / deg }),
		"atan":  unary(func(x float64) float64 { return math.Atan(x) / deg }),
		"sqrt":  unary(math.Sqrt),
		"abs":   unary(math.Abs),
		"ln":    unary(math.Log),
		"log":   unary(math.Log10),
		"floor": unary(math.Floor),
		"ceil":  unary(math.Ceil),
		"round": unary(math.Round),
		"factorial": func(args ...any) (any, error) {
			if len(args) != 1 {
				return nil, fmt.Errorf("expected 1 argument, got %d", len(args))
			}
			x := toFloat64(args[0])
			if x < 0 || x != math.Trunc(x) {
				return nil, fmt.Errorf("factorial of %v", x)
			}
			if x > maxFactorial {
				return nil, fmt.Errorf("factorial of %v overflows", x)
			}
			return factorial(int(x)), nil
		},
	}}
}

func (b *BuiltinEvaluator) Evaluate(_ context.Context, expr string) (string, error) {
	translated, err := toGovaluate(expr)
	if err != nil {
		return "", evalError(expr, err)
	}

	expression, err := govaluate.NewEvaluableExpressionWithFunctions(translated, b.functions)
	if err != nil {
		return "", evalError(expr, err)
	}

	result, err := expression.Evaluate(map[string]any{"pi": math.Pi})
	if err != nil {
		return "", evalError(expr, err)
	}

	f, ok := result.(float64)
	if !ok {
		return "", evalError(expr, fmt.Errorf("result is %T, not a number", result))
	}
	text, err := formatNumber(f)
	if err != nil {
		return "", evalError(expr, err)
	}
	return text, nil
}

// toGovaluate rewrites calculator notation into govaluate syntax: subscript
// literals become decimal, π becomes the pi parameter, ^ becomes ** and n!
// becomes factorial(n).
func toGovaluate(expr string) (string, error) {
	var convErr error
	expr = subscriptLiteralRe.ReplaceAllStringFunc(expr, func(lit string) string {
		m := subscriptLiteralRe.FindStringSubmatch(lit)
		n, err := strconv.ParseUint(m[1], subscriptBases[m[2]], 64)
		if err != nil {
			convErr = fmt.Errorf("bad literal %q", lit)
			return lit
		}
		return strconv.FormatUint(n, 10)
	})
	if convErr != nil {
		return "", convErr
	}

	expr = implicitPiRe.ReplaceAllString(expr, "$1*π")
	expr = factorialRe.ReplaceAllString(expr, "factorial($1)")
	return builtinSymbols.Replace(expr), nil
}

// formatNumber prints like the calculator: no fraction for integers, at most
// nine fractional digits, and U+2212 for negatives.
func formatNumber(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", errors.New("result is not finite")
	}
	if math.Abs(f) < 1e15 {
		f = math.Round(f*1e9) / 1e9
	}
	if f == 0 {
		f = 0
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if strings.Contains(s, ".") {
		s = strconv.FormatFloat(f, 'f', 9, 64)
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	if rest, ok := strings.CutPrefix(s, "-"); ok {
		s = Minus + rest
	}
	return s, nil
}

func toFloat64(arg any) float64 {
	switch v := arg.(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return 0
	}
}

func factorial(n int) float64 {
	res := 1.0
	for i := 2; i <= n; i++ {
		res *= float64(i)
	}
	return res
}
