package cascade

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgeworks-labs/dictforge/internal/ledger"
	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

func numericVar(name string) *variable.Variable {
	return &variable.Variable{
		Name:           name,
		AnalyticalType: taxonomy.Continuous,
		DataType:       taxonomy.Float64,
		Role:           taxonomy.RoleFeature,
		Constraints: map[string]any{
			"nullable":  true,
			"min_value": 0.0,
			"max_value": 120.0,
		},
		Cleaning: map[string]any{
			"missing_strategy":         "mean",
			"standardization_strategy": "zscore",
		},
	}
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, Patch{}.IsEmpty())
	assert.True(t, Patch{Nested: map[string]map[string]any{"cleaning": {}}}.IsEmpty())
	assert.False(t, Patch{Root: map[string]any{"role": "feature"}}.IsEmpty())
	assert.False(t, Patch{Nested: map[string]map[string]any{"governance": {"owner": "risk"}}}.IsEmpty())
}

func TestRunNothingToDo(t *testing.T) {
	l := ledger.New()
	l.Append(numericVar("age"))

	_, err := Run(l, nil, Patch{Root: map[string]any{"role": "feature"}})
	assert.ErrorIs(t, err, ErrNothingToDo)

	_, err = Run(l, []int{0}, Patch{})
	assert.ErrorIs(t, err, ErrNothingToDo)
}

func TestRunBadIndex(t *testing.T) {
	l := ledger.New()
	l.Append(numericVar("age"))

	_, err := Run(l, []int{3}, Patch{Root: map[string]any{"role": "feature"}})
	require.Error(t, err)
	var idxErr *ledger.IndexError
	assert.True(t, errors.As(err, &idxErr))
}

func TestRunLeavesLedgerUntouched(t *testing.T) {
	l := ledger.New()
	l.Append(numericVar("age"))

	report, err := Run(l, []int{0}, Patch{Root: map[string]any{"description": "patched"}})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	assert.NotEmpty(t, report.ID)
	assert.Equal(t, "patched", report.Results[0].Updated.Description)

	orig, err := l.At(0)
	require.NoError(t, err)
	assert.Empty(t, orig.Description, "run must not mutate the source ledger")
}

// Retyping a numeric variable as binary drops its range and scaling
// metadata while its value labels survive.
func TestRunBinaryRetypePrunesNumericMetadata(t *testing.T) {
	v := numericVar("is_active")
	v.Constraints["allowed_values"] = []any{"yes", "no"}

	l := ledger.New()
	l.Append(v)

	report, err := Run(l, []int{0}, Patch{Root: map[string]any{
		"analytical_type": "binary",
		"data_type":       "bool",
	}})
	require.NoError(t, err)
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, taxonomy.Binary, res.Updated.AnalyticalType)
	assert.Equal(t, taxonomy.Bool, res.Updated.DataType)

	c := res.Updated.Constraints
	assert.NotContains(t, c, "min_value")
	assert.NotContains(t, c, "max_value")
	assert.Contains(t, c, "allowed_values")
	assert.Contains(t, c, "nullable")
	assert.NotContains(t, res.Updated.Cleaning, "standardization_strategy")

	assert.ElementsMatch(t, []string{
		"constraints.min_value",
		"constraints.max_value",
		"cleaning.standardization_strategy",
	}, res.Pruned)
	assert.Equal(t, 3, report.TotalPruned())
}

// Running the same patch over its own output prunes nothing further.
func TestRunIsIdempotent(t *testing.T) {
	l := ledger.New()
	l.Append(numericVar("score"))

	patch := Patch{
		Root:   map[string]any{"analytical_type": "nominal", "data_type": "category"},
		Nested: map[string]map[string]any{"governance": {"owner": "analytics"}},
	}

	first, err := Run(l, []int{0}, patch)
	require.NoError(t, err)
	require.NotEmpty(t, first.Results[0].Pruned)

	again := ledger.New()
	again.Append(first.Results[0].Updated)

	second, err := Run(again, []int{0}, patch)
	require.NoError(t, err)
	assert.Empty(t, second.Results[0].Pruned)
	assert.Equal(t, first.Results[0].Updated, second.Results[0].Updated)
}

func TestRunNestedPatchCreatesSection(t *testing.T) {
	v := &variable.Variable{Name: "bare", AnalyticalType: taxonomy.Text, DataType: taxonomy.String}
	l := ledger.New()
	l.Append(v)

	report, err := Run(l, []int{0}, Patch{Nested: map[string]map[string]any{
		"governance": {"sensitivity": "PII", "owner": "legal"},
	}})
	require.NoError(t, err)

	g := report.Results[0].Updated.Governance
	require.NotNil(t, g)
	assert.Equal(t, "PII", g["sensitivity"])
	assert.Equal(t, "legal", g["owner"])
}

func TestRunBlankTypesDefaultToNumeric(t *testing.T) {
	v := &variable.Variable{
		Name:        "untypedvar",
		Constraints: map[string]any{"min_value": 1.0, "allowed_values": []any{"a", "b"}},
	}
	l := ledger.New()
	l.Append(v)

	report, err := Run(l, []int{0}, Patch{Root: map[string]any{"description": "x"}})
	require.NoError(t, err)

	c := report.Results[0].Updated.Constraints
	assert.Contains(t, c, "min_value", "blank types are judged as continuous/float64")
	assert.NotContains(t, c, "allowed_values")
}

func TestCommitWritesBack(t *testing.T) {
	l := ledger.FromVariables([]*variable.Variable{numericVar("a"), numericVar("b"), numericVar("c")})
	s := ledger.NewSession(l)

	report, err := Run(l, []int{0, 2}, Patch{Root: map[string]any{"role": "target"}})
	require.NoError(t, err)
	require.NoError(t, Commit(s, report))

	for _, i := range []int{0, 2} {
		got, err := l.At(i)
		require.NoError(t, err)
		assert.Equal(t, taxonomy.RoleTarget, got.Role)
	}
	middle, err := l.At(1)
	require.NoError(t, err)
	assert.Equal(t, taxonomy.RoleFeature, middle.Role, "untargeted rows stay as they were")
}
