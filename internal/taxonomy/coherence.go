package taxonomy

import "strings"

// AllowedDataTypes returns the storage types permitted for an analytical
// type. Unknown analytical types degrade to the object catch-all rather
// than erroring, so callers always have something to render.
func AllowedDataTypes(at AnalyticalType) []DataType {
	switch at {
	case Continuous:
		return []DataType{Float64}
	case Discrete:
		return []DataType{Int64}
	case Nominal:
		return []DataType{Category, String, Bool}
	case Ordinal:
		return []DataType{Category}
	case Binary:
		return []DataType{Bool, Int64}
	case Text:
		return []DataType{String}
	case TimeIndex:
		return []DataType{Datetime64}
	case Spatial:
		return []DataType{Float64, String}
	default:
		return []DataType{Object}
	}
}

// AllowedRoles returns the functional roles permitted for an analytical
// type / data type pair. The rules form an ordered chain where the first
// match wins: a time axis forces the time_index role no matter what else
// the variable claims to be. Ordinal and discrete intentionally fall
// through to the full role list.
func AllowedRoles(at AnalyticalType, dt DataType) []Role {
	if at == TimeIndex || dt == Datetime64 {
		return []Role{RoleTimeIndex}
	}

	switch at {
	case Text:
		return []Role{RoleFeature, RoleMetadata}
	case Spatial:
		return []Role{RoleFeature, RoleMetadata}
	case Binary:
		return []Role{RoleFeature, RoleTarget, RoleGroup, RoleMetadata}
	case Continuous:
		return []Role{RoleFeature, RoleTarget, RoleGroup, RoleMetadata}
	case Nominal:
		return []Role{RoleFeature, RoleTarget, RoleID, RoleGroup, RoleMetadata}
	}

	return AllRoles()
}

// alwaysHidden are deprecated fields no context may show.
var alwaysHidden = map[string]bool{
	"plot_color": true,
	"formatting": true,
}

// hiddenByAnalyticalType holds the per-type suppression lists. The ordinal
// entry is special-cased in IsFieldVisible because ordinal_mapping is
// hidden for every other analytical type.
var hiddenByAnalyticalType = map[AnalyticalType][]string{
	Continuous: {"allowed_values", "regex_pattern", "ordinal_mapping", "text_normalization", "encoding_strategy"},
	Discrete:   {"allowed_values", "regex_pattern", "ordinal_mapping", "text_normalization", "encoding_strategy"},
	// allowed_values stays visible for binary: the two labels are the
	// whole point of a dual-state variable.
	Binary: {
		"min_value", "max_value", "regex_pattern", "ordinal_mapping",
		"unique", "outlier_strategy", "outlier_threshold", "standardization_strategy",
		"infinite_value_handling", "text_normalization",
	},
	Nominal: {
		"outlier_strategy", "outlier_threshold", "ordinal_mapping",
		"standardization_strategy", "infinite_value_handling", "text_normalization",
	},
	Text: {
		"outlier_strategy", "outlier_threshold", "ordinal_mapping",
		"standardization_strategy", "infinite_value_handling", "encoding_strategy",
	},
	TimeIndex: {
		"allowed_values", "regex_pattern", "outlier_strategy", "outlier_threshold",
		"ordinal_mapping", "standardization_strategy", "infinite_value_handling",
		"text_normalization", "encoding_strategy",
	},
	Ordinal: {
		"regex_pattern", "outlier_strategy", "outlier_threshold",
		"standardization_strategy", "infinite_value_handling", "text_normalization",
	},
}

// hiddenByDataType holds the per-storage-type suppression lists, applied
// only when a data type is supplied.
var hiddenByDataType = map[DataType][]string{
	String: {"outlier_strategy", "outlier_threshold", "ordinal_mapping", "standardization_strategy"},
	Category: {
		"min_value", "max_value", "regex_pattern",
		"outlier_strategy", "outlier_threshold", "standardization_strategy",
	},
	Bool: {
		"min_value", "max_value", "regex_pattern", "allowed_values", "unique",
		"outlier_strategy", "outlier_threshold", "ordinal_mapping", "standardization_strategy",
	},
}

func contains(fields []string, field string) bool {
	for _, f := range fields {
		if f == field {
			return true
		}
	}
	return false
}

// IsFieldVisible reports whether a metadata field is applicable for the
// given analytical type and optional data type (pass NoDataType to skip
// storage-level rules). Visibility is the default; any matching
// suppression rule hides the field and nothing re-enables it. The
// function is total: it never fails for any field string or type value.
func IsFieldVisible(field string, at AnalyticalType, dt DataType) bool {
	if alwaysHidden[field] {
		return false
	}

	if hidden, ok := hiddenByAnalyticalType[at]; ok && at != Ordinal {
		if contains(hidden, field) {
			return false
		}
	}

	// ordinal_mapping only ever makes sense for ordinal variables.
	if at == Ordinal {
		if contains(hiddenByAnalyticalType[Ordinal], field) {
			return false
		}
	} else if field == "ordinal_mapping" {
		return false
	}

	if (field == "standardization_strategy" || field == "infinite_value_handling") && at != Continuous {
		return false
	}
	if field == "text_normalization" && at != Text {
		return false
	}
	if field == "encoding_strategy" && at != Nominal && at != Ordinal && at != Binary {
		return false
	}

	if dt != NoDataType {
		if hidden, ok := hiddenByDataType[dt]; ok && contains(hidden, field) {
			return false
		}
	}

	return true
}

// IsFieldRequired reports whether a field is mandatory for the given
// context. It gates required-field markers and form validation; the
// record builder enforces the hard invariants separately.
func IsFieldRequired(field string, at AnalyticalType, dt DataType) bool {
	if field == "allowed_values" && dt == Category {
		return true
	}
	if field == "ordinal_mapping" && at == Ordinal {
		return true
	}
	if (field == "unique" || field == "nullable") && at == Nominal && dt == String {
		return true
	}
	if field == "data_steward" || field == "sensitivity" {
		return true
	}
	return false
}

// DynamicLabel renders a context-aware human label for a field. Range
// bounds change meaning with the analytical type: numeric bounds for
// measures, character lengths for strings, date bounds for time axes.
func DynamicLabel(field string, at AnalyticalType) string {
	switch field {
	case "min_value":
		switch at {
		case Continuous, Discrete, Spatial:
			return "Lower Numeric Bound"
		case Text, Nominal, Ordinal:
			return "Minimum Character Length"
		case TimeIndex:
			return "Start Date"
		}
	case "max_value":
		switch at {
		case Continuous, Discrete, Spatial:
			return "Upper Numeric Bound"
		case Text, Nominal, Ordinal:
			return "Maximum Character Length"
		case TimeIndex:
			return "End Date"
		}
	case "pii_flag":
		return "Contains PII?"
	case "compliance_scope":
		return "Regulatory Compliance"
	case "retention_period":
		return "Data Retention Period"
	case "sla":
		return "Service Level Agreement (SLA)"
	}

	return titleCase(field)
}

// titleCase turns snake_case field names into Title Case labels.
func titleCase(field string) string {
	words := strings.Split(field, "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
