package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedDataTypes(t *testing.T) {
	tests := []struct {
		name string
		at   AnalyticalType
		want []DataType
	}{
		{"continuous locks to float64", Continuous, []DataType{Float64}},
		{"discrete locks to int64", Discrete, []DataType{Int64}},
		{"nominal allows category, string, bool", Nominal, []DataType{Category, String, Bool}},
		{"ordinal locks to category", Ordinal, []DataType{Category}},
		{"binary allows bool and int64", Binary, []DataType{Bool, Int64}},
		{"text locks to string", Text, []DataType{String}},
		{"time index locks to datetime64", TimeIndex, []DataType{Datetime64}},
		{"spatial allows float64 and string", Spatial, []DataType{Float64, String}},
		{"unknown degrades to object", AnalyticalType("unknown_garbage"), []DataType{Object}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedDataTypes(tt.at))
		})
	}
}

// Every (at, dt) combination must yield a non-empty data type set and,
// for every permitted data type, a non-empty role set.
func TestTaxonomyClosure(t *testing.T) {
	ats := append(AllAnalyticalTypes(), AnalyticalType("something_else"))

	for _, at := range ats {
		dts := AllowedDataTypes(at)
		if len(dts) == 0 {
			t.Fatalf("AllowedDataTypes(%q) is empty", at)
		}
		for _, dt := range dts {
			roles := AllowedRoles(at, dt)
			if len(roles) == 0 {
				t.Fatalf("AllowedRoles(%q, %q) is empty", at, dt)
			}
		}
	}
}

func TestAllowedRoles(t *testing.T) {
	tests := []struct {
		name string
		at   AnalyticalType
		dt   DataType
		want []Role
	}{
		{"time index forces its role", TimeIndex, Datetime64, []Role{RoleTimeIndex}},
		{"datetime64 forces time index even for other types", Nominal, Datetime64, []Role{RoleTimeIndex}},
		{"text is feature or metadata", Text, String, []Role{RoleFeature, RoleMetadata}},
		{"spatial is feature or metadata", Spatial, Float64, []Role{RoleFeature, RoleMetadata}},
		{"binary excludes id and time index", Binary, Bool, []Role{RoleFeature, RoleTarget, RoleGroup, RoleMetadata}},
		{"continuous excludes id and time index", Continuous, Float64, []Role{RoleFeature, RoleTarget, RoleGroup, RoleMetadata}},
		{"nominal excludes only time index", Nominal, Category, []Role{RoleFeature, RoleTarget, RoleID, RoleGroup, RoleMetadata}},
		{"ordinal falls through to all roles", Ordinal, Category, AllRoles()},
		{"discrete falls through to all roles", Discrete, Int64, AllRoles()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedRoles(tt.at, tt.dt))
		})
	}
}

func TestIsFieldVisible(t *testing.T) {
	tests := []struct {
		name  string
		field string
		at    AnalyticalType
		dt    DataType
		want  bool
	}{
		{"deprecated plot_color always hidden", "plot_color", Continuous, NoDataType, false},
		{"deprecated formatting always hidden", "formatting", Ordinal, Category, false},

		{"ordinal_mapping hidden for nominal", "ordinal_mapping", Nominal, NoDataType, false},
		{"ordinal_mapping visible for ordinal", "ordinal_mapping", Ordinal, NoDataType, true},
		{"ordinal_mapping hidden for unknown type", "ordinal_mapping", AnalyticalType("mystery"), NoDataType, false},

		{"allowed_values hidden for continuous", "allowed_values", Continuous, NoDataType, false},
		{"allowed_values hidden for discrete", "allowed_values", Discrete, NoDataType, false},
		{"allowed_values visible for nominal", "allowed_values", Nominal, NoDataType, true},
		{"min_value hidden for binary", "min_value", Binary, NoDataType, false},
		{"max_value hidden for binary", "max_value", Binary, NoDataType, false},
		{"allowed_values hidden for time index", "allowed_values", TimeIndex, NoDataType, false},
		{"regex hidden for ordinal", "regex_pattern", Ordinal, NoDataType, false},
		{"outliers hidden for nominal", "outlier_strategy", Nominal, NoDataType, false},

		{"standardization only for continuous", "standardization_strategy", Continuous, NoDataType, true},
		{"standardization hidden for spatial", "standardization_strategy", Spatial, NoDataType, false},
		{"infinite handling only for continuous", "infinite_value_handling", Discrete, NoDataType, false},
		{"text normalization only for text", "text_normalization", Text, NoDataType, true},
		{"text normalization hidden for spatial", "text_normalization", Spatial, NoDataType, false},
		{"encoding visible for nominal", "encoding_strategy", Nominal, NoDataType, true},
		{"encoding visible for binary", "encoding_strategy", Binary, NoDataType, true},
		{"encoding hidden for spatial", "encoding_strategy", Spatial, NoDataType, false},

		{"string dtype hides outliers", "outlier_strategy", Spatial, String, false},
		{"category dtype hides bounds", "min_value", Nominal, Category, false},
		{"category dtype keeps allowed_values", "allowed_values", Nominal, Category, true},
		{"bool dtype hides allowed_values", "allowed_values", Nominal, Bool, false},
		{"bool dtype hides unique", "unique", Nominal, Bool, false},

		{"governance fields pass through", "sensitivity", Binary, Bool, true},
		{"database mapping passes through", "target_table", TimeIndex, Datetime64, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsFieldVisible(tt.field, tt.at, tt.dt)
			assert.Equal(t, tt.want, got, "IsFieldVisible(%q, %q, %q)", tt.field, tt.at, tt.dt)
		})
	}
}

// IsFieldVisible must be total: no combination of field, analytical type,
// and data type may panic, including unknown strings.
func TestIsFieldVisibleTotality(t *testing.T) {
	fields := []string{
		"allowed_values", "regex_pattern", "ordinal_mapping", "unique", "nullable",
		"min_value", "max_value", "outlier_strategy", "outlier_threshold",
		"standardization_strategy", "infinite_value_handling", "text_normalization",
		"encoding_strategy", "plot_color", "formatting", "frequency", "monotonicity",
		"data_steward", "sensitivity", "", "completely_made_up",
	}
	ats := append(AllAnalyticalTypes(), AnalyticalType(""), AnalyticalType("junk"))
	dts := append(AllDataTypes(), NoDataType, DataType("junk"))

	for _, f := range fields {
		for _, at := range ats {
			for _, dt := range dts {
				_ = IsFieldVisible(f, at, dt)
			}
		}
	}
}

func TestIsFieldRequired(t *testing.T) {
	assert.True(t, IsFieldRequired("allowed_values", Nominal, Category))
	assert.False(t, IsFieldRequired("allowed_values", Nominal, String))
	assert.True(t, IsFieldRequired("ordinal_mapping", Ordinal, Category))
	assert.False(t, IsFieldRequired("ordinal_mapping", Nominal, Category))
	assert.True(t, IsFieldRequired("unique", Nominal, String))
	assert.True(t, IsFieldRequired("nullable", Nominal, String))
	assert.False(t, IsFieldRequired("unique", Continuous, Float64))
	assert.True(t, IsFieldRequired("data_steward", Continuous, Float64))
	assert.True(t, IsFieldRequired("sensitivity", Text, String))
	assert.False(t, IsFieldRequired("description", Text, String))
}

func TestDynamicLabel(t *testing.T) {
	assert.Equal(t, "Lower Numeric Bound", DynamicLabel("min_value", Continuous))
	assert.Equal(t, "Minimum Character Length", DynamicLabel("min_value", Text))
	assert.Equal(t, "Start Date", DynamicLabel("min_value", TimeIndex))
	assert.Equal(t, "Upper Numeric Bound", DynamicLabel("max_value", Spatial))
	assert.Equal(t, "End Date", DynamicLabel("max_value", TimeIndex))
	assert.Equal(t, "Contains PII?", DynamicLabel("pii_flag", Continuous))
	assert.Equal(t, "Regulatory Compliance", DynamicLabel("compliance_scope", Continuous))
	assert.Equal(t, "Data Retention Period", DynamicLabel("retention_period", Continuous))
	assert.Equal(t, "Missing Strategy", DynamicLabel("missing_strategy", Continuous))
}
