package taxonomy

import "strings"

// Guess holds the heuristic classification inferred from a variable name.
type Guess struct {
	AnalyticalType AnalyticalType
	DataType       DataType
	Role           Role
}

// GuessMetadata infers a default analytical type, data type, and role from
// a variable's name alone. Rules are ordered and the first match wins;
// anything unrecognized defaults to a continuous float feature.
func GuessMetadata(name string) Guess {
	lower := strings.ToLower(name)

	switch {
	case strings.HasSuffix(lower, "_id") || lower == "id":
		return Guess{Discrete, Int64, RoleID}
	case strings.HasSuffix(lower, "_date") || strings.HasSuffix(lower, "_at") || strings.HasSuffix(lower, "_time"):
		return Guess{TimeIndex, Datetime64, RoleTimeIndex}
	case strings.HasPrefix(lower, "is_") || strings.HasPrefix(lower, "has_") || strings.HasPrefix(lower, "flag_"):
		return Guess{Binary, Bool, RoleFeature}
	case strings.Contains(lower, "name") || strings.Contains(lower, "email") || strings.Contains(lower, "desc"):
		return Guess{Text, String, RoleMetadata}
	case strings.Contains(lower, "_cat") || strings.Contains(lower, "_type") || strings.Contains(lower, "_status"):
		return Guess{Nominal, Category, RoleFeature}
	}

	return Guess{Continuous, Float64, RoleFeature}
}
