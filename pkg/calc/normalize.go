package calc

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	subscript2  = "₂"
	subscript8  = "₈"
	subscript16 = "₁₆"
)

var (
	// Coarse gate, not a parser: anything with a digit, an operator or pi passes.
	validRe = regexp.MustCompile(`(?i)([0-9+\-*/^!]|pi)+`)
	piRe    = regexp.MustCompile(`(?i)pi`)

	// The leading group keeps the character before the literal. '.' is in the
	// excluded class so the fraction of "1.05" is not taken for an octal literal.
	octalRe  = regexp.MustCompile(`(^|\s|[^0-9a-fA-Fxb.]+)0([0-7]+)`)
	hexRe    = regexp.MustCompile(`(^|\s|[^0-9a-fA-Fxb.]+)0x([0-9a-fA-F]+)`)
	binaryRe = regexp.MustCompile(`(^|\s|[^0-9a-fA-Fxb.]+)0b([01]+)`)

	radInverseRe = regexp.MustCompile(`ra(sin|cos|tan)\(`)
	radForwardRe = regexp.MustCompile(`r(sin|cos|tan)\(`)
)

// Pass is a single text rewrite of the pipeline.
type Pass func(string) string

// Passes run in order after the validity check.
var Passes = []Pass{
	SubstituteConstants,
	AnnotateRadixLiterals,
	RewriteTrigModes,
}

// Normalized is a query ready for the evaluator.
type Normalized struct {
	Expression string
	Directive  Directive
}

// JoinTerms joins search terms with single spaces and turns decimal commas
// into points. Commas used as argument separators are converted as well.
func JoinTerms(terms []string) string {
	return strings.ReplaceAll(strings.Join(terms, " "), ",", ".")
}

// Valid reports whether expr looks enough like arithmetic to be evaluated.
func Valid(expr string) bool {
	return validRe.MatchString(expr)
}

// Normalize turns raw search terms into the evaluator's notation and pulls out
// a trailing display directive. It returns ErrRejected when the joined terms
// do not look like an expression.
func Normalize(terms []string) (Normalized, error) {
	expr := JoinTerms(terms)
	if !Valid(expr) {
		return Normalized{}, ErrRejected
	}
	for _, pass := range Passes {
		expr = pass(expr)
	}
	expr, dir := extractDirective(expr)
	return Normalized{Expression: expr, Directive: dir}, nil
}

// SubstituteConstants replaces every "pi" with π.
func SubstituteConstants(expr string) string {
	return piRe.ReplaceAllString(expr, "π")
}

// AnnotateRadixLiterals rewrites 0x1A, 017 and 0b101 literals into the
// evaluator's subscript notation (1A₁₆, 17₈, 101₂). Literals already carrying
// a subscript are left alone, so the pass is idempotent.
//
// A literal with a leading zero is read as octal. "05" in "3 + 05" is therefore
// 5₈, not decimal 5; text alone cannot tell the two apart.
func AnnotateRadixLiterals(expr string) string {
	expr = annotate(expr, octalRe, subscript8)
	expr = annotate(expr, hexRe, subscript16)
	return annotate(expr, binaryRe, subscript2)
}

func annotate(expr string, re *regexp.Regexp, marker string) string {
	var b strings.Builder
	last := 0
	for _, m := range re.FindAllStringSubmatchIndex(expr, -1) {
		end := m[1]
		if !literalEnds(expr[end:]) {
			continue
		}
		b.WriteString(expr[last:m[0]])
		b.WriteString(expr[m[2]:m[3]])
		b.WriteString(expr[m[4]:m[5]])
		b.WriteString(marker)
		last = end
	}
	if last == 0 {
		return expr
	}
	b.WriteString(expr[last:])
	return b.String()
}

// literalEnds reports whether a matched literal is complete. A literal followed
// by more digits, letters, a fraction or a subscript is something else
// ("078", "0x1.8", "01₁₆") and is not annotated.
func literalEnds(rest string) bool {
	for _, r := range rest {
		if r == '.' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
		if r >= '₀' && r <= '₉' {
			return false
		}
		return true
	}
	return true
}

// RewriteTrigModes expands the radian shorthands. rsin(x) becomes
// sin((180/π) * x) and rasin(x) becomes (π/180) * asin(x), likewise for cos
// and tan. The inverse form runs first so "ra" is never read as "r" + "asin".
func RewriteTrigModes(expr string) string {
	expr = radInverseRe.ReplaceAllString(expr, "(π/180) * a${1}(")
	return radForwardRe.ReplaceAllString(expr, "${1}((180/π) * ")
}
