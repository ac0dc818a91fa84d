package blueprint

import "strings"

// Legacy vocabulary carried by older template libraries. Lookups are
// case-insensitive; anything unmapped passes through lower-cased so
// sanitization is total.
var legacyAnalyticalTypes = map[string]string{
	"categorical": "nominal",
	"boolean":     "binary",
	"numeric":     "continuous",
	"datetime":    "time_index",
}

var legacyDataTypes = map[string]string{
	"boolean":  "bool",
	"float":    "float64",
	"integer":  "int64",
	"string":   "string",
	"category": "category",
}

var legacyRoles = map[string]string{
	"dimension":  "feature",
	"measure":    "target",
	"identifier": "id",
}

// SanitizeAnalyticalType resolves a legacy analytical type name to the
// canonical vocabulary.
func SanitizeAnalyticalType(raw string) string {
	return resolve(legacyAnalyticalTypes, raw)
}

// SanitizeDataType resolves a legacy data type name to the canonical
// vocabulary.
func SanitizeDataType(raw string) string {
	return resolve(legacyDataTypes, raw)
}

// SanitizeRole resolves a legacy role name to the canonical vocabulary.
func SanitizeRole(raw string) string {
	return resolve(legacyRoles, raw)
}

func resolve(table map[string]string, raw string) string {
	lowered := strings.ToLower(strings.TrimSpace(raw))
	if canonical, ok := table[lowered]; ok {
		return canonical
	}
	return lowered
}

// Sanitize rewrites a template document in place: the three vocabulary
// fields are resolved to canonical terms and the legacy
// constraints.is_nullable key is renamed to nullable. The original key
// is removed, not copied.
func Sanitize(doc map[string]any) {
	if raw, ok := doc["analytical_type"]; ok {
		doc["analytical_type"] = SanitizeAnalyticalType(asString(raw))
	}
	if raw, ok := doc["data_type"]; ok {
		doc["data_type"] = SanitizeDataType(asString(raw))
	}
	if raw, ok := doc["role"]; ok {
		doc["role"] = SanitizeRole(asString(raw))
	}

	if constraints, ok := doc["constraints"].(map[string]any); ok {
		if val, found := constraints["is_nullable"]; found {
			constraints["nullable"] = val
			delete(constraints, "is_nullable")
		}
	}
}
