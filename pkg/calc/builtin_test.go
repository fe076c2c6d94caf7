package calc

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinEvaluator(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"2+2", "4"},
		{"5 * 10₁₆", "80"},
		{"17₈ + 101₂", "20"},
		{"2^10", "1024"},
		{"5!", "120"},
		{"170! / 170!", "1"},
		{"1/3", "0.333333333"},
		{"3 − 5", "−2"},
		{"3 - 5.5", "−2.5"},
		{"2π", "6.283185307"},
		{"sin(30)", "0.5"},
		{"cos(180)", "−1"},
		{"sin((180/π) * π/2)", "1"},
		{"(π/180) * asin(1)", "1.570796327"},
		{"sqrt(16) × 2", "8"},
		{"10 ÷ 4", "2.5"},
		{"log(1000)", "3"},
		{"ff₁₆", "255"},
	}

	b := NewBuiltinEvaluator()
	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := b.Evaluate(context.Background(), tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBuiltinEvaluator_Errors(t *testing.T) {
	exprs := []string{
		"1/0", "9₈", "hello", "1 > 0", "2 +", "factorial(-3)",
		// past float64 range, and far past int64 for the last one
		"171!", "3000000000!", "99999999999999999999!",
	}

	b := NewBuiltinEvaluator()
	for _, expr := range exprs {
		t.Run(expr, func(t *testing.T) {
			_, err := b.Evaluate(context.Background(), expr)
			assert.ErrorIs(t, err, ErrEvaluation)
		})
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{-0.0000000001, "0"},
		{42, "42"},
		{-7, "−7"},
		{0.1 + 0.2, "0.3"},
		{1e20, "100000000000000000000"},
	}
	for _, tt := range tests {
		got, err := formatNumber(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
