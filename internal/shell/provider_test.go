package shell

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hoppxi/wigo-calc/pkg/calc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCopier struct {
	copied []string
	err    error
}

func (f *fakeCopier) Copy(text string) error {
	f.copied = append(f.copied, text)
	return f.err
}

func newProvider(out string, err error) (*Provider, *fakeCopier) {
	eval := calc.EvaluatorFunc(func(context.Context, string) (string, error) {
		return out, err
	})
	copier := &fakeCopier{}
	return NewProvider(calc.New(eval, nil), copier, "accessories-calculator", nil), copier
}

func TestGetInitialResultSet(t *testing.T) {
	p, _ := newProvider("80", nil)

	ids, dErr := p.GetInitialResultSet([]string{"5", "*", "0x10"})
	require.Nil(t, dErr)
	require.Len(t, ids, 1)

	metas, dErr := p.GetResultMetas(ids)
	require.Nil(t, dErr)
	require.Len(t, metas, 1)
	assert.Equal(t, ids[0], metas[0]["id"].Value())
	assert.Equal(t, "80", metas[0]["name"].Value())
	assert.Equal(t, "5 * 10₁₆", metas[0]["description"].Value())
	assert.Equal(t, "accessories-calculator", metas[0]["gicon"].Value())
}

func TestGetInitialResultSet_Empty(t *testing.T) {
	p, _ := newProvider("", errors.New("exit status 1"))

	ids, dErr := p.GetInitialResultSet([]string{"1+"})
	assert.Nil(t, dErr)
	assert.Empty(t, ids)

	ids, dErr = p.GetSubsearchResultSet(nil, []string{"firefox"})
	assert.Nil(t, dErr)
	assert.Empty(t, ids)
}

func TestGetSubsearchResultSet(t *testing.T) {
	p, _ := newProvider("10", nil)

	first, _ := p.GetInitialResultSet([]string{"10"})
	refined, dErr := p.GetSubsearchResultSet(first, []string{"10", "in", "binary"})
	require.Nil(t, dErr)
	require.Len(t, refined, 1)

	metas, _ := p.GetResultMetas(refined)
	require.Len(t, metas, 1)
	assert.Equal(t, "0b1010", metas[0]["name"].Value())
}

func TestGetResultMetas_UnknownID(t *testing.T) {
	p, _ := newProvider("1", nil)

	metas, dErr := p.GetResultMetas([]string{"missing"})
	assert.Nil(t, dErr)
	assert.Empty(t, metas)
}

func TestActivateResult(t *testing.T) {
	p, copier := newProvider("255", nil)

	ids, _ := p.GetInitialResultSet([]string{"255"})
	require.Len(t, ids, 1)

	assert.Nil(t, p.ActivateResult(ids[0], []string{"255"}, 0))
	assert.Equal(t, []string{"255"}, copier.copied)
}

func TestActivateResult_FallsBackToLatest(t *testing.T) {
	p, copier := newProvider("4", nil)

	_, _ = p.GetInitialResultSet([]string{"2+2"})
	assert.Nil(t, p.ActivateResult("forgotten", nil, 0))
	assert.Equal(t, []string{"4"}, copier.copied)
}

func TestActivateResult_NothingToCopy(t *testing.T) {
	p, copier := newProvider("4", nil)

	assert.Nil(t, p.ActivateResult("missing", nil, 0))
	assert.Empty(t, copier.copied)
}

func TestActivateResult_CopyErrorIsSwallowed(t *testing.T) {
	p, copier := newProvider("4", nil)
	copier.err = errors.New("no clipboard")

	ids, _ := p.GetInitialResultSet([]string{"2+2"})
	assert.Nil(t, p.ActivateResult(ids[0], nil, 0))
}

func TestLaunchSearch(t *testing.T) {
	p, copier := newProvider("16", nil)

	assert.Nil(t, p.LaunchSearch([]string{"16", "in", "hex"}, 0))
	assert.Equal(t, []string{"0x10"}, copier.copied)

	latest, ok := p.store.Latest()
	require.True(t, ok)
	assert.Equal(t, "0x10", latest.Result)
}

func TestResultStore_LatestOnlyMovesForward(t *testing.T) {
	s := newResultStore()
	s.put(calc.DisplayResult{ID: "b", Seq: 2, Result: "newer"})
	s.put(calc.DisplayResult{ID: "a", Seq: 1, Result: "older"})

	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "newer", latest.Result)

	_, ok = s.get("a")
	assert.True(t, ok)
}

func TestResultStore_Bounded(t *testing.T) {
	s := newResultStore()
	for i := 1; i <= keepResults+4; i++ {
		s.put(calc.DisplayResult{ID: fmt.Sprintf("r%d", i), Seq: uint64(i)})
	}

	_, ok := s.get("r1")
	assert.False(t, ok)
	_, ok = s.get(fmt.Sprintf("r%d", keepResults+4))
	assert.True(t, ok)
	assert.Len(t, s.byID, keepResults)
}

func TestProviderINI(t *testing.T) {
	ini := ProviderINI("wigo-calc.desktop", "org.hoppxi.WigoCalc.SearchProvider", "/org/hoppxi/WigoCalc/SearchProvider")
	assert.Contains(t, ini, "[Shell Search Provider]\n")
	assert.Contains(t, ini, "BusName=org.hoppxi.WigoCalc.SearchProvider\n")
	assert.Contains(t, ini, "ObjectPath=/org/hoppxi/WigoCalc/SearchProvider\n")
	assert.Contains(t, ini, "Version=2\n")
}
