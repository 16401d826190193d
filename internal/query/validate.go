package query

import (
	"errors"
	"regexp"
	"strings"
)

// Validation errors returned for rejected SQL. Handlers map these to 400s.
var (
	ErrEmpty         = errors.New("sql is empty")
	ErrNotReadOnly   = errors.New("only SELECT, WITH and EXPLAIN queries are allowed")
	ErrMultiple      = errors.New("only a single statement is allowed")
	ErrDeniedKeyword = errors.New("query uses a disallowed keyword")
)

var allowedPrefixes = []string{"SELECT", "WITH", "EXPLAIN"}

// The serving handle is already read-only; this keeps statements that leak
// or mutate connection state out regardless.
var deniedKeywords = regexp.MustCompile(`(?i)\b(PRAGMA|ATTACH|DETACH|VACUUM|REINDEX|ANALYZE)\b`)

// Validate checks that raw is a single read-only statement and returns it
// normalized (trimmed, trailing semicolon removed).
func Validate(raw string) (string, error) {
	sql := strings.TrimSpace(raw)
	sql = strings.TrimSuffix(sql, ";")
	sql = strings.TrimSpace(sql)
	if sql == "" {
		return "", ErrEmpty
	}

	if containsStatementBreak(sql) {
		return "", ErrMultiple
	}

	upper := strings.ToUpper(sql)
	allowed := false
	for _, prefix := range allowedPrefixes {
		if strings.HasPrefix(upper, prefix+" ") || strings.HasPrefix(upper, prefix+"\n") || strings.HasPrefix(upper, prefix+"\t") || upper == prefix {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", ErrNotReadOnly
	}

	if deniedKeywords.MatchString(stripLiterals(sql)) {
		return "", ErrDeniedKeyword
	}

	return sql, nil
}

// containsStatementBreak reports whether a semicolon appears outside string
// literals and quoted identifiers.
func containsStatementBreak(sql string) bool {
	for _, r := range literalSpans(sql) {
		if r == ';' {
			return true
		}
	}
	return false
}

// stripLiterals replaces the contents of string literals and quoted
// identifiers with spaces so keyword matching ignores them.
func stripLiterals(sql string) string {
	return string(literalSpans(sql))
}

func literalSpans(sql string) []rune {
	out := []rune(sql)
	var quote rune
	for i, r := range out {
		if quote != 0 {
			if r == quote {
				quote = 0
			} else {
				out[i] = ' '
			}
			continue
		}
		switch r {
		case '\'', '"', '`':
			quote = r
		}
	}
	return out
}
