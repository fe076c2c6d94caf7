package calc

import (
	"regexp"
	"strings"
)

// Directive is the radix requested by a trailing "in <radix>" phrase.
// The zero value means no directive: the evaluator's decimal text is shown as is.
type Directive int

// The recognized directives. DirectiveNone keeps decimal output.
const (
	DirectiveNone Directive = iota
	DirectiveHex
	DirectiveOctal
	DirectiveBinary
)

var directiveRe = regexp.MustCompile(`(?i)\s*in\s+(hexadecimal|hex|octal|oct|binary|bin)\s*$`)

var directiveNames = map[string]Directive{
	"hex":         DirectiveHex,
	"hexadecimal": DirectiveHex,
	"oct":         DirectiveOctal,
	"octal":       DirectiveOctal,
	"bin":         DirectiveBinary,
	"binary":      DirectiveBinary,
}

// Radix returns the numeric base of the directive, 10 for DirectiveNone.
func (d Directive) Radix() int {
	switch d {
	case DirectiveHex:
		return 16
	case DirectiveOctal:
		return 8
	case DirectiveBinary:
		return 2
	default:
		return 10
	}
}

func (d Directive) String() string {
	switch d {
	case DirectiveHex:
		return "hex"
	case DirectiveOctal:
		return "octal"
	case DirectiveBinary:
		return "binary"
	default:
		return "none"
	}
}

// extractDirective removes a trailing "in hex|octal|binary" phrase and reports
// which radix it named.
func extractDirective(expr string) (string, Directive) {
	m := directiveRe.FindStringSubmatchIndex(expr)
	if m == nil {
		return expr, DirectiveNone
	}
	name := strings.ToLower(expr[m[2]:m[3]])
	return expr[:m[0]], directiveNames[name]
}
