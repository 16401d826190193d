package query

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/kschroeder20/nba-database-2000-2025/internal/catalog"
)

// Filter is one column constraint parsed from the query string,
// e.g. draft_round__gte=1 or shoots__isnull=1.
type Filter struct {
	Column string
	Op     string
	Value  string
}

// Sort describes the requested row ordering.
type Sort struct {
	Column string
	Desc   bool
}

// Page describes pagination bounds.
type Page struct {
	Size   int
	Offset int
}

// BrowseRequest is a fully parsed table-browsing request.
type BrowseRequest struct {
	Filters []Filter
	Sort    *Sort
	Page    Page
}

type filterOp struct {
	sql      string
	hasValue bool
}

var filterOps = map[string]filterOp{
	"exact":   {sql: "= ?", hasValue: true},
	"not":     {sql: "!= ?", hasValue: true},
	"gt":      {sql: "> ?", hasValue: true},
	"gte":     {sql: ">= ?", hasValue: true},
	"lt":      {sql: "< ?", hasValue: true},
	"lte":     {sql: "<= ?", hasValue: true},
	"like":    {sql: "LIKE ?", hasValue: true},
	"isnull":  {sql: "IS NULL"},
	"notnull": {sql: "IS NOT NULL"},
}

// Reserved query-string keys that are not column filters.
func reservedKey(key string) bool {
	return strings.HasPrefix(key, "_") || key == "sql"
}

// ParseBrowse parses filters, sort and pagination for the given table.
// defaultSize/maxSize bound the page size.
func ParseBrowse(values url.Values, table catalog.Table, defaultSize, maxSize int) (BrowseRequest, error) {
	req := BrowseRequest{Page: Page{Size: defaultSize}}

	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if reservedKey(key) {
			continue
		}
		filter, err := parseFilter(key, values.Get(key), table)
		if err != nil {
			return BrowseRequest{}, err
		}
		req.Filters = append(req.Filters, filter)
	}

	if err := parseSort(values, table, &req); err != nil {
		return BrowseRequest{}, err
	}

	if raw := values.Get("_size"); raw != "" {
		size, err := strconv.Atoi(raw)
		if err != nil || size <= 0 {
			return BrowseRequest{}, fmt.Errorf("invalid _size %q", raw)
		}
		if size > maxSize {
			size = maxSize
		}
		req.Page.Size = size
	}
	if raw := values.Get("_offset"); raw != "" {
		offset, err := strconv.Atoi(raw)
		if err != nil || offset < 0 {
			return BrowseRequest{}, fmt.Errorf("invalid _offset %q", raw)
		}
		req.Page.Offset = offset
	}

	return req, nil
}

func parseFilter(key, value string, table catalog.Table) (Filter, error) {
	column := key
	op := "exact"
	if idx := strings.LastIndex(key, "__"); idx > 0 {
		column = key[:idx]
		op = key[idx+2:]
	}

	spec, ok := filterOps[op]
	if !ok {
		return Filter{}, fmt.Errorf("unknown filter operator %q", op)
	}
	if !table.HasColumn(column) {
		return Filter{}, fmt.Errorf("unknown column %q", column)
	}
	if !spec.hasValue {
		value = ""
	}
	return Filter{Column: column, Op: op, Value: value}, nil
}

func parseSort(values url.Values, table catalog.Table, req *BrowseRequest) error {
	asc := values.Get("_sort")
	desc := values.Get("_sort_desc")
	if asc != "" && desc != "" {
		return fmt.Errorf("cannot combine _sort and _sort_desc")
	}

	column, isDesc := asc, false
	if desc != "" {
		column, isDesc = desc, true
	}
	if column == "" {
		return nil
	}
	if !table.HasColumn(column) {
		return fmt.Errorf("cannot sort by unknown column %q", column)
	}
	req.Sort = &Sort{Column: column, Desc: isDesc}
	return nil
}

// BuildSelect renders the browse request into SQL plus bind args. Column and
// table names come from the introspected schema, never from user input.
func BuildSelect(table catalog.Table, req BrowseRequest) (string, []any) {
	var sb strings.Builder
	sb.WriteString("SELECT * FROM ")
	sb.WriteString(catalog.QuoteIdentifier(table.Name))

	var args []any
	if len(req.Filters) > 0 {
		sb.WriteString(" WHERE ")
		for i, f := range req.Filters {
			if i > 0 {
				sb.WriteString(" AND ")
			}
			spec := filterOps[f.Op]
			sb.WriteString(catalog.QuoteIdentifier(f.Column))
			sb.WriteString(" ")
			sb.WriteString(spec.sql)
			if spec.hasValue {
				args = append(args, f.Value)
			}
		}
	}

	if req.Sort != nil {
		sb.WriteString(" ORDER BY ")
		sb.WriteString(catalog.QuoteIdentifier(req.Sort.Column))
		if req.Sort.Desc {
			sb.WriteString(" DESC")
		}
	}

	if req.Page.Size > 0 {
		// Fetch one extra row to detect whether a next page exists.
		fmt.Fprintf(&sb, " LIMIT %d", req.Page.Size+1)
	}
	if req.Page.Offset > 0 {
		fmt.Fprintf(&sb, " OFFSET %d", req.Page.Offset)
	}

	return sb.String(), args
}
