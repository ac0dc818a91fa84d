package export

import (
	"fmt"
	"strings"

	"github.com/forgeworks-labs/dictforge/internal/taxonomy"
	"github.com/forgeworks-labs/dictforge/internal/variable"
)

// DefaultTable receives every variable whose database_mapping carries
// no target table.
const DefaultTable = "public_schema_table"

// SQLScript compiles the dictionary into PostgreSQL CREATE TABLE
// statements. Variables are grouped by database_mapping.target_table
// in first-appearance order; column constraints come from the
// constraints and database_mapping sections.
func SQLScript(vars []*variable.Variable) string {
	var tableOrder []string
	tables := map[string][]*variable.Variable{}
	for _, v := range vars {
		name := strings.TrimSpace(stringField(v.Section(variable.SectionDatabaseMapping), "target_table"))
		if name == "" {
			name = DefaultTable
		}
		if _, seen := tables[name]; !seen {
			tableOrder = append(tableOrder, name)
		}
		tables[name] = append(tables[name], v)
	}

	lines := []string{"-- PostgreSQL schema generated by dictforge\n"}
	for _, table := range tableOrder {
		lines = append(lines, fmt.Sprintf("CREATE TABLE %s (", table))

		var colDefs, fkDefs []string
		for _, v := range tables[table] {
			col, fk := columnDef(v)
			colDefs = append(colDefs, col)
			if fk != "" {
				fkDefs = append(fkDefs, fk)
			}
		}
		lines = append(lines, strings.Join(append(colDefs, fkDefs...), ",\n"), ");\n")
	}
	return strings.Join(lines, "\n")
}

func columnDef(v *variable.Variable) (colDef, fkDef string) {
	name := columnName(v)
	constraints := v.Section(variable.SectionConstraints)
	mapping := v.Section(variable.SectionDatabaseMapping)

	var b strings.Builder
	fmt.Fprintf(&b, "    %s %s", name, pgType(v.DataType, constraints))

	if isTrue(mapping["is_primary_key"]) {
		b.WriteString(" PRIMARY KEY")
	} else {
		if isTrue(constraints["unique"]) {
			b.WriteString(" UNIQUE")
		}
		if nullable, ok := constraints["nullable"].(bool); ok && !nullable {
			b.WriteString(" NOT NULL")
		}
	}

	if allowed := variable.StringList(constraints["allowed_values"]); len(allowed) > 0 {
		escaped := make([]string, len(allowed))
		for i, val := range allowed {
			escaped[i] = "'" + strings.ReplaceAll(val, "'", "''") + "'"
		}
		fmt.Fprintf(&b, " CHECK (%s IN (%s))", name, strings.Join(escaped, ", "))
	} else if v.DataType == taxonomy.Int64 || v.DataType == taxonomy.Float64 {
		if min, ok := numericValue(constraints["min_value"]); ok {
			fmt.Fprintf(&b, " CHECK (%s >= %s)", name, min)
		}
		if max, ok := numericValue(constraints["max_value"]); ok {
			fmt.Fprintf(&b, " CHECK (%s <= %s)", name, max)
		}
	}

	if ref := strings.TrimSpace(stringField(mapping, "foreign_key_reference")); ref != "" {
		fkDef = fmt.Sprintf("    FOREIGN KEY (%s) REFERENCES %s", name, ref)
	}
	return b.String(), fkDef
}

func columnName(v *variable.Variable) string {
	name := v.Name
	if name == "" {
		name = "unknown_column"
	}
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

func pgType(dt taxonomy.DataType, constraints map[string]any) string {
	switch dt {
	case taxonomy.Int64:
		return "BIGINT"
	case taxonomy.Float64:
		return "DOUBLE PRECISION"
	case taxonomy.Bool:
		return "BOOLEAN"
	case taxonomy.Datetime64:
		return "TIMESTAMP"
	case taxonomy.String, taxonomy.Category:
		if n, ok := intValue(constraints["max_value"]); ok && n > 0 {
			return fmt.Sprintf("VARCHAR(%d)", n)
		}
		return "VARCHAR(255)"
	default:
		return "TEXT"
	}
}

func stringField(section map[string]any, key string) string {
	if s, ok := section[key].(string); ok {
		return s
	}
	return ""
}

func isTrue(val any) bool {
	b, ok := val.(bool)
	return ok && b
}

// intValue accepts only whole-number values; a float max on a string
// column falls back to the default length.
func intValue(val any) (int, bool) {
	switch n := val.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	default:
		return 0, false
	}
}

func numericValue(val any) (string, bool) {
	switch n := val.(type) {
	case int:
		return fmt.Sprint(n), true
	case int64:
		return fmt.Sprint(n), true
	case float64:
		return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%f", n), "0"), "."), true
	default:
		return "", false
	}
}
