package calc

import (
	"fmt"
	"math/big"
	"strings"
)

// Minus is the sign the calculator prints in front of negative results.
// It is U+2212, not the ASCII hyphen.
const Minus = "−"

const digitTable = "0123456789ABCDEF"

var prefixes = map[int]string{
	16: "0x",
	10: "",
	8:  "0",
	2:  "0b",
}

// Rebase converts the calculator's decimal text into radix, keeping the sign
// and adding the radix prefix: Rebase("255", 16) is "0xFF" and
// Rebase("−16", 16) is "−0x10". Any fractional part is dropped.
func Rebase(decimal string, radix int) (string, error) {
	prefix, ok := prefixes[radix]
	if !ok {
		return "", fmt.Errorf("unsupported radix %d", radix)
	}

	text := strings.TrimSpace(decimal)
	neg := false
	if rest, found := strings.CutPrefix(text, Minus); found {
		neg = true
		text = rest
	} else if rest, found := strings.CutPrefix(text, "-"); found {
		neg = true
		text = rest
	}

	n, err := integerPart(text)
	if err != nil {
		return "", err
	}

	digits := toRadix(n, radix)
	if neg {
		return Minus + prefix + digits, nil
	}
	return prefix + digits, nil
}

// integerPart parses the magnitude in front of the decimal point, ignoring
// digit group separators.
func integerPart(text string) (*big.Int, error) {
	if strings.ContainsAny(text, "eE×") {
		return nil, fmt.Errorf("not a plain decimal number: %q", text)
	}
	whole, _, _ := strings.Cut(text, ".")
	whole = strings.NewReplacer(",", "", " ", "", "\u2009", "", "\u202f", "").Replace(whole)
	if whole == "" {
		whole = "0"
	}
	n, ok := new(big.Int).SetString(whole, 10)
	if !ok || n.Sign() < 0 {
		return nil, fmt.Errorf("not a decimal number: %q", text)
	}
	return n, nil
}

// toRadix emits digits from the most significant position down, dividing by
// descending powers of radix.
func toRadix(n *big.Int, radix int) string {
	base := big.NewInt(int64(radix))
	one := big.NewInt(1)

	term := big.NewInt(1)
	next := new(big.Int)
	for next.Mul(term, base).Cmp(n) <= 0 {
		term.Set(next)
	}

	var b strings.Builder
	rem := new(big.Int).Set(n)
	for term.Cmp(one) > 0 {
		digit, r := new(big.Int).QuoRem(rem, term, new(big.Int))
		b.WriteByte(digitTable[digit.Int64()])
		rem = r
		term.Quo(term, base)
	}
	b.WriteByte(digitTable[rem.Int64()])

	if b.Len() == 0 {
		return "0"
	}
	return b.String()
}
