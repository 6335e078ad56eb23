package signal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/dosio/internal/catalog"
)

func TestStatisticsConstant(t *testing.T) {
	v := With(catalog.OSSM1Lcl, []float64{1, 1, 1, 1})
	assert.Equal(t, 1.0, Mean(v))
	assert.Equal(t, 0.0, Var(v))
	assert.Equal(t, 0.0, Std(v))
	assert.Equal(t, 4.0, SumSquared(v))
	assert.Equal(t, 1.0, MeanSumSquared(v))
}

func TestStatisticsPopulationVariance(t *testing.T) {
	v := With(catalog.OSSM1Lcl, []float64{1, 2, 3})
	assert.Equal(t, 2.0, Mean(v))
	assert.InDelta(t, 2.0/3.0, Var(v), 1e-15)
	assert.InDelta(t, math.Sqrt(2.0/3.0), Std(v), 1e-15)
	assert.Equal(t, 14.0, SumSquared(v))
	assert.InDelta(t, 14.0/3.0, MeanSumSquared(v), 1e-15)
}

func TestStatisticsAbsentIsNaN(t *testing.T) {
	v := New[[]float64](catalog.OSSM1Lcl)
	for name, f := range map[string]func(Vector) float64{
		"SumSquared":     SumSquared,
		"MeanSumSquared": MeanSumSquared,
		"Mean":           Mean,
		"Var":            Var,
		"Std":            Std,
	} {
		assert.True(t, math.IsNaN(f(v)), name)
	}
}

func TestStatisticsEmptyPayload(t *testing.T) {
	v := With(catalog.OSSM1Lcl, []float64{})
	assert.Equal(t, 0.0, SumSquared(v))
	assert.True(t, math.IsNaN(Mean(v)))
	assert.True(t, math.IsNaN(Var(v)))
}

func TestAddAssign(t *testing.T) {
	a := With(catalog.OSSM1Lcl, []float64{1, 2, 3})
	b := With(catalog.OSSM1Lcl, []float64{4, 5, 6})
	require.NoError(t, AddAssign(&a, b))

	got, _ := a.Get()
	assert.Equal(t, []float64{5, 7, 9}, got)
	src, _ := b.Get()
	assert.Equal(t, []float64{4, 5, 6}, src, "operand untouched")
}

func TestAddAssignDoesNotAliasPrevious(t *testing.T) {
	backing := []float64{1, 2}
	a := With(catalog.TTFB, backing)
	require.NoError(t, AddAssign(&a, With(catalog.TTFB, []float64{1, 1})))
	assert.Equal(t, []float64{1, 2}, backing)
}

func TestSubAssign(t *testing.T) {
	a := With(catalog.OSSM1Lcl, []float64{4, 5, 6})
	require.NoError(t, SubAssign(&a, With(catalog.OSSM1Lcl, []float64{1, 2, 3})))
	got, _ := a.Get()
	assert.Equal(t, []float64{3, 3, 3}, got)
}

func TestArithmeticKindMismatchIsNoOp(t *testing.T) {
	a := With(catalog.OSSM1Lcl, []float64{1, 2, 3})
	err := AddAssign(&a, With(catalog.MCM2Lcl6D, []float64{4, 5, 6}))
	require.Error(t, err)

	var aerr *ArithmeticError
	require.ErrorAs(t, err, &aerr)
	assert.Equal(t, "adding", aerr.Op)
	assert.Equal(t, catalog.OSSM1Lcl, aerr.Kind)
	assert.Equal(t, catalog.MCM2Lcl6D, aerr.Other)
	assert.Equal(t, "failed adding OSSM1Lcl with MCM2Lcl6D: kind mismatch", err.Error())

	got, _ := a.Get()
	assert.Equal(t, []float64{1, 2, 3}, got)
}

func TestArithmeticAbsentAndLengthMismatch(t *testing.T) {
	a := New[[]float64](catalog.TTFB)
	assert.Error(t, SubAssign(&a, With(catalog.TTFB, []float64{1})))
	assert.False(t, a.Has())

	b := With(catalog.TTFB, []float64{1})
	assert.Error(t, AddAssign(&b, New[[]float64](catalog.TTFB)))

	err := AddAssign(&b, With(catalog.TTFB, []float64{1, 2}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "length mismatch 1 != 2")
	got, _ := b.Get()
	assert.Equal(t, []float64{1}, got)
}

func TestScale(t *testing.T) {
	a := With(catalog.M1HPCmd, []float64{1, -2})
	require.NoError(t, Scale(&a, 2.5))
	got, _ := a.Get()
	assert.Equal(t, []float64{2.5, -5}, got)

	empty := New[[]float64](catalog.M1HPCmd)
	err := Scale(&empty, 2)
	require.Error(t, err)
	assert.Equal(t, "failed scaling M1HPCmd: payload absent", err.Error())
}

func TestCloned(t *testing.T) {
	orig := With(catalog.TTFB, []float64{1, 2})
	c := Cloned(orig)
	(*c.Ref())[0] = 42
	v, _ := orig.Get()
	assert.Equal(t, []float64{1, 2}, v)

	absent := Cloned(New[[]float64](catalog.TTFB))
	assert.False(t, absent.Has())
	assert.Equal(t, catalog.TTFB, absent.Kind())
}
