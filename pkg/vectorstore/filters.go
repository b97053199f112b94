package vectorstore

import (
	"encoding/json"
	"fmt"
)

// Condition is the interface all filter conditions implement.
// Each adapter converts these to its native filter format.
type Condition interface {
	// IsCondition is a marker method to ensure type safety.
	IsCondition()
}

// FilterSet supports Must (AND), Should (OR), and MustNot (NOT) clauses.
// Use with Query.Filters to restrict search results by metadata.
//
// Example:
//
//	filters := &FilterSet{
//	    Must: &ConditionSet{
//	        Conditions: []Condition{
//	            &MatchCondition{Field: "lang", Value: "en"},
//	        },
//	    },
//	}
type FilterSet struct {
	// Must: all conditions must match (AND)
	Must *ConditionSet `json:"must,omitempty"`
	// Should: at least one condition must match (OR)
	Should *ConditionSet `json:"should,omitempty"`
	// MustNot: none of the conditions may match (NOT)
	MustNot *ConditionSet `json:"mustNot,omitempty"`
}

// Empty reports whether the set carries no conditions at all.
func (fs *FilterSet) Empty() bool {
	if fs == nil {
		return true
	}
	count := func(cs *ConditionSet) int {
		if cs == nil {
			return 0
		}
		return len(cs.Conditions)
	}
	return count(fs.Must)+count(fs.Should)+count(fs.MustNot) == 0
}

// ConditionSet holds a group of conditions for a single clause.
type ConditionSet struct {
	Conditions []Condition `json:"conditions,omitempty"`
}

// MatchCondition represents an exact match filter (WHERE field = value).
// Supports string, bool, and numeric values.
type MatchCondition struct {
	Field string `json:"field"`
	Value any    `json:"equalTo"`
}

func (c *MatchCondition) IsCondition() {}

// MatchAnyCondition matches if the field value is one of the given values.
// SQL equivalent: WHERE field IN (value1, value2, ...)
type MatchAnyCondition struct {
	Field  string `json:"field"`
	Values []any  `json:"anyOf"`
}

func (c *MatchAnyCondition) IsCondition() {}

// NumericRange defines bounds for numeric filtering.
type NumericRange struct {
	Gt  *float64 `json:"greaterThan,omitempty"`          // exclusive
	Gte *float64 `json:"greaterThanOrEqualTo,omitempty"` // inclusive
	Lt  *float64 `json:"lessThan,omitempty"`             // exclusive
	Lte *float64 `json:"lessThanOrEqualTo,omitempty"`    // inclusive
}

// NumericRangeCondition filters by numeric range.
// SQL equivalent: WHERE field >= min AND field <= max
type NumericRangeCondition struct {
	Field string       `json:"field"`
	Range NumericRange `json:"-"`
}

func (c *NumericRangeCondition) IsCondition() {}

func (c *NumericRangeCondition) MarshalJSON() ([]byte, error) {
	type alias struct {
		Field                string   `json:"field"`
		GreaterThan          *float64 `json:"greaterThan,omitempty"`
		GreaterThanOrEqualTo *float64 `json:"greaterThanOrEqualTo,omitempty"`
		LessThan             *float64 `json:"lessThan,omitempty"`
		LessThanOrEqualTo    *float64 `json:"lessThanOrEqualTo,omitempty"`
	}
	return json.Marshal(alias{
		Field:                c.Field,
		GreaterThan:          c.Range.Gt,
		GreaterThanOrEqualTo: c.Range.Gte,
		LessThan:             c.Range.Lt,
		LessThanOrEqualTo:    c.Range.Lte,
	})
}

func (c *NumericRangeCondition) UnmarshalJSON(data []byte) error {
	type alias struct {
		Field                string   `json:"field"`
		GreaterThan          *float64 `json:"greaterThan,omitempty"`
		GreaterThanOrEqualTo *float64 `json:"greaterThanOrEqualTo,omitempty"`
		LessThan             *float64 `json:"lessThan,omitempty"`
		LessThanOrEqualTo    *float64 `json:"lessThanOrEqualTo,omitempty"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	c.Field = a.Field
	c.Range = NumericRange{Gt: a.GreaterThan, Gte: a.GreaterThanOrEqualTo, Lt: a.LessThan, Lte: a.LessThanOrEqualTo}
	return nil
}

// ── FilterSet constructors ───────────────────────────────────────────────────

// NewFilterSet creates a FilterSet with the given clauses.
//
// Example:
//
//	vectorstore.NewFilterSet(
//	    vectorstore.Must(vectorstore.NewMatch("status", "published")),
//	    vectorstore.Should(vectorstore.NewMatch("tag", "ml"), vectorstore.NewMatch("tag", "ai")),
//	)
func NewFilterSet(clauses ...func(*FilterSet)) *FilterSet {
	fs := &FilterSet{}
	for _, clause := range clauses {
		clause(fs)
	}
	return fs
}

// Must creates a Must clause (AND logic) with the given conditions.
func Must(conditions ...Condition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Must = &ConditionSet{Conditions: conditions}
	}
}

// Should creates a Should clause (OR logic) with the given conditions.
func Should(conditions ...Condition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.Should = &ConditionSet{Conditions: conditions}
	}
}

// MustNot creates a MustNot clause (NOT logic) with the given conditions.
func MustNot(conditions ...Condition) func(*FilterSet) {
	return func(fs *FilterSet) {
		fs.MustNot = &ConditionSet{Conditions: conditions}
	}
}

// NewMatch creates an exact-match condition.
func NewMatch(field string, value any) *MatchCondition {
	return &MatchCondition{Field: field, Value: value}
}

// NewMatchAny creates an IN condition.
func NewMatchAny(field string, values ...any) *MatchAnyCondition {
	return &MatchAnyCondition{Field: field, Values: values}
}

// NewNumericRange creates a numeric range condition.
func NewNumericRange(field string, r NumericRange) *NumericRangeCondition {
	return &NumericRangeCondition{Field: field, Range: r}
}

// ── JSON serialization ───────────────────────────────────────────────────────

// MarshalJSON implements custom JSON marshaling for ConditionSet.
// This is needed because Condition is an interface.
func (cs *ConditionSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(cs.Conditions)
}

// UnmarshalJSON detects the condition type based on JSON keys and deserializes
// into the appropriate concrete type.
func (cs *ConditionSet) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	cs.Conditions = make([]Condition, 0, len(raw))

	for _, r := range raw {
		cond, err := parseCondition(r)
		if err != nil {
			return err
		}
		cs.Conditions = append(cs.Conditions, cond)
	}

	return nil
}

// parseCondition detects and parses a single Condition from JSON by the keys
// present: "equalTo" -> MatchCondition, "anyOf" -> MatchAnyCondition,
// "greaterThan"/"lessThan"/... -> NumericRangeCondition.
func parseCondition(data []byte) (Condition, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}

	switch {
	case hasKey(fields, "equalTo"):
		var c MatchCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	case hasKey(fields, "anyOf"):
		var c MatchAnyCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	case hasKey(fields, "greaterThan"), hasKey(fields, "greaterThanOrEqualTo"),
		hasKey(fields, "lessThan"), hasKey(fields, "lessThanOrEqualTo"):
		var c NumericRangeCondition
		if err := json.Unmarshal(data, &c); err != nil {
			return nil, err
		}
		return &c, nil

	default:
		return nil, fmt.Errorf("unknown filter condition type: %s", string(data))
	}
}

func hasKey(m map[string]json.RawMessage, key string) bool {
	_, ok := m[key]
	return ok
}
