package repository

import (
	"events-discovery/data/models"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	defaultLimit = 10
	maxLimit     = 10000
	defaultSort  = "createdAt"
)

// reservedParams are handled by the ORDER BY and LIMIT/OFFSET clauses rather
// than becoming WHERE conditions.
var reservedParams = map[string]bool{"sortBy": true, "limit": true, "offset": true}

// filterOp maps a query parameter suffix to its SQL operator. Longer suffixes
// sharing a tail with shorter ones come first (_lte before _lt, _icontains
// before _contains).
type filterOp struct {
	suffix   string
	operator string
	wildcard bool
}

var filterOps = []filterOp{
	{suffix: "_ne", operator: "!="},
	{suffix: "_lte", operator: "<="},
	{suffix: "_gte", operator: ">="},
	{suffix: "_lt", operator: "<"},
	{suffix: "_gt", operator: ">"},
	{suffix: "_icontains", operator: "ILIKE", wildcard: true},
	{suffix: "_contains", operator: "LIKE", wildcard: true},
	{suffix: "_anyOf", operator: "IN"},
}

// clauseBuilder accumulates WHERE conditions and their positional values.
type clauseBuilder struct {
	columns    map[string]string
	conditions []string
	values     []interface{}
}

// placeholder registers v and returns its $n placeholder.
func (b *clauseBuilder) placeholder(v interface{}) string {
	b.values = append(b.values, v)
	return fmt.Sprintf("$%d", len(b.values))
}

// column resolves a JSON field name to its database column.
func (b *clauseBuilder) column(field string) (string, error) {
	col := b.columns[field]
	if col == "" {
		return "", fmt.Errorf("invalid query parameter: %s", field)
	}
	return col, nil
}

// buildQueryClauses turns query parameters into the WHERE, ORDER BY and
// LIMIT/OFFSET clauses of a SELECT on m's table. Filter keys take the form
// field[_op]=value where field is a JSON tag of m. It returns the clauses,
// their positional values and the row limit.
func buildQueryClauses(queryParams map[string]string, m models.Model) (string, []interface{}, int, error) {
	b := &clauseBuilder{columns: models.MapJsonTagsToDB(m)}

	keys := make([]string, 0, len(queryParams))
	for key := range queryParams {
		if !reservedParams[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := b.addFilter(key, queryParams[key]); err != nil {
			return "", nil, 0, err
		}
	}

	orderBy, err := b.orderBy(queryParams["sortBy"])
	if err != nil {
		return "", nil, 0, err
	}

	limit, offset, err := pagination(queryParams)
	if err != nil {
		return "", nil, 0, err
	}

	parts := make([]string, 0, 3)
	if len(b.conditions) > 0 {
		parts = append(parts, "WHERE "+strings.Join(b.conditions, " AND "))
	}
	parts = append(parts, orderBy)
	parts = append(parts, fmt.Sprintf("LIMIT %s OFFSET %s", b.placeholder(limit), b.placeholder(offset)))

	return strings.Join(parts, " "), b.values, limit, nil
}

func (b *clauseBuilder) addFilter(key, value string) error {
	op := filterOp{operator: "="}
	for _, candidate := range filterOps {
		if strings.HasSuffix(key, candidate.suffix) {
			op = candidate
			key = strings.TrimSuffix(key, candidate.suffix)
			break
		}
	}

	col, err := b.column(key)
	if err != nil {
		return err
	}

	switch {
	case op.operator == "IN":
		// category_anyOf=music,tech
		list := strings.Split(value, ",")
		placeholders := make([]string, len(list))
		for i, v := range list {
			placeholders[i] = b.placeholder(convertValueIfNumeric(v))
		}
		b.conditions = append(b.conditions, fmt.Sprintf("%s IN (%s)", col, strings.Join(placeholders, ",")))
	case op.wildcard:
		b.conditions = append(b.conditions, fmt.Sprintf("%s %s %s", col, op.operator, b.placeholder("%"+value+"%")))
	default:
		b.conditions = append(b.conditions, fmt.Sprintf("%s %s %s", col, op.operator, b.placeholder(convertValueIfNumeric(value))))
	}
	return nil
}

// orderBy sorts on field, descending when it carries a leading "-". The id
// tie-breaker keeps equal sort values in a repeatable order.
func (b *clauseBuilder) orderBy(field string) (string, error) {
	direction := "ASC"
	if strings.HasPrefix(field, "-") {
		direction = "DESC"
		field = strings.TrimPrefix(field, "-")
	}
	if field == "" {
		field = defaultSort
	}

	col, err := b.column(field)
	if err != nil {
		return "", fmt.Errorf("invalid sort value: %v", field)
	}
	return fmt.Sprintf("ORDER BY %s %s, id ASC", col, direction), nil
}

func pagination(queryParams map[string]string) (limit, offset int, err error) {
	limit = defaultLimit
	if l, ok := queryParams["limit"]; ok {
		if limit, err = strconv.Atoi(l); err != nil {
			return 0, 0, fmt.Errorf("pagination err; limit must be a number: %v", err)
		}
		if limit < 1 || limit > maxLimit {
			return 0, 0, fmt.Errorf("pagination err; limit must be between 1 and %d", maxLimit)
		}
	}
	if o, ok := queryParams["offset"]; ok {
		if offset, err = strconv.Atoi(o); err != nil {
			return 0, 0, fmt.Errorf("pagination err; offset must be a number: %v", err)
		}
		if offset < 0 {
			return 0, 0, fmt.Errorf("pagination err; offset must not be negative")
		}
	}
	return limit, offset, nil
}

func convertValueIfNumeric(value string) interface{} {
	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	} else if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
		return floatValue
	}
	return value
}
