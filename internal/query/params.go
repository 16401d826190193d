package query

import (
	"database/sql"
	"fmt"
	"regexp"
)

var namedParamPattern = regexp.MustCompile(`:([a-zA-Z_][a-zA-Z0-9_]*)`)

// NamedParameters extracts the :name placeholders from a validated query,
// ignoring occurrences inside string literals. Order follows first
// appearance; duplicates are collapsed.
func NamedParameters(sql string) []string {
	stripped := stripLiterals(sql)

	var names []string
	seen := make(map[string]bool)
	for _, match := range namedParamPattern.FindAllStringSubmatch(stripped, -1) {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// BindNamed resolves every placeholder in sqlText from values, erroring on
// missing parameters so callers get a 400 instead of a driver error.
func BindNamed(sqlText string, values map[string]string) ([]any, error) {
	var args []any
	for _, name := range NamedParameters(sqlText) {
		val, ok := values[name]
		if !ok {
			return nil, fmt.Errorf("missing value for parameter :%s", name)
		}
		args = append(args, sql.Named(name, val))
	}
	return args, nil
}
