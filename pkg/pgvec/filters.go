package pgvec

import (
	"fmt"
	"strings"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// buildFilterSQL compiles a vectorstore.FilterSet into a WHERE clause over
// the jsonb metadata column. Field names are bound as parameters, never
// interpolated into the SQL text.
//
// Returns ("", nil, nil) for an empty set; the clause string starts with
// " WHERE " when non-empty so it can be appended to the base query directly.
func buildFilterSQL(fs *vectorstore.FilterSet) (string, []interface{}, error) {
	if fs.Empty() {
		return "", nil, nil
	}

	var clauses []string
	var args []interface{}

	appendConds := func(cs *vectorstore.ConditionSet, join string, negate bool) error {
		if cs == nil || len(cs.Conditions) == 0 {
			return nil
		}
		parts := make([]string, 0, len(cs.Conditions))
		for _, cond := range cs.Conditions {
			sql, condArgs, err := buildCondition(cond)
			if err != nil {
				return err
			}
			if negate {
				sql = "NOT (" + sql + ")"
			}
			parts = append(parts, sql)
			args = append(args, condArgs...)
		}
		clauses = append(clauses, "("+strings.Join(parts, join)+")")
		return nil
	}

	if err := appendConds(fs.Must, " AND ", false); err != nil {
		return "", nil, err
	}
	if err := appendConds(fs.Should, " OR ", false); err != nil {
		return "", nil, err
	}
	if err := appendConds(fs.MustNot, " AND ", true); err != nil {
		return "", nil, err
	}

	if len(clauses) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

func buildCondition(cond vectorstore.Condition) (string, []interface{}, error) {
	switch c := cond.(type) {
	case *vectorstore.MatchCondition:
		return buildMatch(c)
	case *vectorstore.MatchAnyCondition:
		return buildMatchAny(c)
	case *vectorstore.NumericRangeCondition:
		return buildNumericRange(c)
	default:
		return "", nil, fmt.Errorf("%w: unsupported filter condition %T", vectorstore.ErrValidation, cond)
	}
}

func buildMatch(c *vectorstore.MatchCondition) (string, []interface{}, error) {
	if c.Field == "" {
		return "", nil, fmt.Errorf("%w: match condition requires a field", vectorstore.ErrValidation)
	}
	switch v := c.Value.(type) {
	case string:
		return "metadata->>? = ?", []interface{}{c.Field, v}, nil
	case bool:
		return "(metadata->>?)::boolean = ?", []interface{}{c.Field, v}, nil
	case int, int64, float64:
		return "(metadata->>?)::numeric = ?", []interface{}{c.Field, v}, nil
	default:
		return "", nil, fmt.Errorf("%w: unsupported match value type %T", vectorstore.ErrValidation, c.Value)
	}
}

func buildMatchAny(c *vectorstore.MatchAnyCondition) (string, []interface{}, error) {
	if c.Field == "" || len(c.Values) == 0 {
		return "", nil, fmt.Errorf("%w: matchAny condition requires a field and values", vectorstore.ErrValidation)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(c.Values)), ",")
	args := make([]interface{}, 0, len(c.Values)+1)
	args = append(args, c.Field)
	args = append(args, c.Values...)

	switch c.Values[0].(type) {
	case string:
		return "metadata->>? IN (" + placeholders + ")", args, nil
	case int, int64, float64:
		return "(metadata->>?)::numeric IN (" + placeholders + ")", args, nil
	default:
		return "", nil, fmt.Errorf("%w: unsupported matchAny value type %T", vectorstore.ErrValidation, c.Values[0])
	}
}

func buildNumericRange(c *vectorstore.NumericRangeCondition) (string, []interface{}, error) {
	if c.Field == "" {
		return "", nil, fmt.Errorf("%w: range condition requires a field", vectorstore.ErrValidation)
	}

	var parts []string
	var args []interface{}
	add := func(op string, bound *float64) {
		if bound == nil {
			return
		}
		parts = append(parts, "(metadata->>?)::numeric "+op+" ?")
		args = append(args, c.Field, *bound)
	}
	add(">", c.Range.Gt)
	add(">=", c.Range.Gte)
	add("<", c.Range.Lt)
	add("<=", c.Range.Lte)

	if len(parts) == 0 {
		return "", nil, fmt.Errorf("%w: range condition on %q has no bounds", vectorstore.ErrValidation, c.Field)
	}
	return "(" + strings.Join(parts, " AND ") + ")", args, nil
}
