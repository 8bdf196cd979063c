package expr

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func eval(t *testing.T, text string, instanceJSON string) any {
	t.Helper()
	e := NewEngine()
	result, err := e.Evaluate(text, []byte(instanceJSON))
	assert.NoError(t, err)
	return result
}

func TestStringFunctions(t *testing.T) {
	assert.Equal(t, "HELLO", eval(t, `upper("hello")`, `{}`))
	assert.Equal(t, "hello", eval(t, `lower("HELLO")`, `{}`))
	assert.Equal(t, float64(5), eval(t, `len("hello")`, `{}`))
	assert.Equal(t, "ab", eval(t, `concat("a", "b")`, `{}`))
	assert.Equal(t, "ell", eval(t, `substring("hello", 1, 4)`, `{}`))
	assert.Equal(t, true, eval(t, `contains("hello", "ell")`, `{}`))
	assert.Equal(t, true, eval(t, `startswith("hello", "he")`, `{}`))
	assert.Equal(t, true, eval(t, `endswith("hello", "lo")`, `{}`))
	assert.Equal(t, true, eval(t, `matches("hello", "^h.*o$")`, `{}`))
}

func TestStringFunctionsRejectWrongArgType(t *testing.T) {
	e := NewEngine()
	_, err := e.Evaluate(`upper(1)`, []byte(`{}`))
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestMathFunctions(t *testing.T) {
	assert.Equal(t, float64(3), eval(t, `abs(-3)`, `{}`))
	assert.Equal(t, float64(3), eval(t, `round(2.6)`, `{}`))
	assert.Equal(t, float64(2), eval(t, `floor(2.6)`, `{}`))
	assert.Equal(t, float64(3), eval(t, `ceil(2.1)`, `{}`))
	assert.Equal(t, float64(1), eval(t, `min(1, 2, 3)`, `{}`))
	assert.Equal(t, float64(3), eval(t, `max(1, 2, 3)`, `{}`))
	assert.Equal(t, float64(8), eval(t, `pow(2, 3)`, `{}`))
	assert.Equal(t, float64(3), eval(t, `sqrt(9)`, `{}`))
}

func TestMathSqrtRejectsNegative(t *testing.T) {
	e := NewEngine()
	_, err := e.Evaluate(`sqrt(-1)`, []byte(`{}`))
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestAggregationFunctions(t *testing.T) {
	ctx := `{"nums": [1, 2, 3]}`
	assert.Equal(t, float64(6), eval(t, `sum(nums)`, ctx))
	assert.Equal(t, float64(2), eval(t, `avg(nums)`, ctx))
	assert.Equal(t, float64(3), eval(t, `count(nums)`, ctx))
	assert.Equal(t, true, eval(t, `any(nums)`, ctx))
	assert.Equal(t, true, eval(t, `all(nums)`, ctx))
}

func TestAggregationAvgRejectsEmptyList(t *testing.T) {
	e := NewEngine()
	_, err := e.Evaluate(`avg(nums)`, []byte(`{"nums": []}`))
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestDateFunctionYear(t *testing.T) {
	assert.Equal(t, float64(2024), eval(t, `year("2024-03-15")`, `{}`))
}

func TestDateFunctionDaysBetween(t *testing.T) {
	result := eval(t, `days_between("2024-01-01", "2024-01-11")`, `{}`)
	assert.Equal(t, float64(10), result)
}

func TestDateFunctionYearRejectsUnparseableDate(t *testing.T) {
	e := NewEngine()
	_, err := e.Evaluate(`year("not-a-date")`, []byte(`{}`))
	assert.ErrorIs(t, err, ErrEvaluation)
}

func TestDateFunctionNowUsesInjectedClock(t *testing.T) {
	fixed := time.Date(2024, 3, 15, 12, 30, 0, 0, time.UTC)
	e := NewEngine(WithClock(fixedClock{t: fixed}))
	result, err := e.Evaluate("now()", []byte(`{}`))
	assert.NoError(t, err)
	assert.Equal(t, fixed.Format(time.RFC3339), result)
}

func TestCallBuiltinRejectsUnknownFunction(t *testing.T) {
	e := NewEngine()
	_, err := e.Evaluate(`nosuchfunction(1)`, []byte(`{}`))
	assert.ErrorIs(t, err, ErrEvaluation)
}
