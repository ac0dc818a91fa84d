// Package taxonomy implements the technical coherence engine: the static
// tables and ordered rule chains that decide, for any combination of
// analytical type and storage data type, which data types, functional roles,
// and metadata fields are legal.
package taxonomy

// AnalyticalType describes the statistical nature of a variable.
type AnalyticalType string

const (
	Continuous AnalyticalType = "continuous"
	Discrete   AnalyticalType = "discrete"
	Nominal    AnalyticalType = "nominal"
	Ordinal    AnalyticalType = "ordinal"
	Binary     AnalyticalType = "binary"
	Text       AnalyticalType = "text"
	TimeIndex  AnalyticalType = "time_index"
	Spatial    AnalyticalType = "spatial"
)

// DataType is the physical storage representation.
type DataType string

const (
	Float64    DataType = "float64"
	Int64      DataType = "int64"
	String     DataType = "string"
	Bool       DataType = "bool"
	Category   DataType = "category"
	Datetime64 DataType = "datetime64"
	Object     DataType = "object"

	// NoDataType marks an unspecified data type; data-type suppression
	// rules are skipped when it is passed.
	NoDataType DataType = ""
)

// Role is the functional purpose of a variable in downstream modeling.
type Role string

const (
	RoleFeature   Role = "feature"
	RoleTarget    Role = "target"
	RoleID        Role = "id"
	RoleTimeIndex Role = "time_index"
	RoleGroup     Role = "group"
	RoleMetadata  Role = "metadata"
)

// AllAnalyticalTypes lists every analytical type in display order.
func AllAnalyticalTypes() []AnalyticalType {
	return []AnalyticalType{Continuous, Discrete, Nominal, Ordinal, Binary, Text, TimeIndex, Spatial}
}

// AllDataTypes lists every storage data type in display order.
func AllDataTypes() []DataType {
	return []DataType{Float64, Int64, String, Bool, Category, Datetime64, Object}
}

// AllRoles lists every functional role in display order.
func AllRoles() []Role {
	return []Role{RoleFeature, RoleTarget, RoleID, RoleTimeIndex, RoleGroup, RoleMetadata}
}

// IsKnownAnalyticalType reports whether at is one of the canonical
// analytical types. Unknown values are not an error anywhere in the
// engine; they fall through to the object/catch-all branches.
func IsKnownAnalyticalType(at AnalyticalType) bool {
	for _, known := range AllAnalyticalTypes() {
		if at == known {
			return true
		}
	}
	return false
}
