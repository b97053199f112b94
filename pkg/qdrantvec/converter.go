package qdrantvec

import (
	"fmt"

	"github.com/google/uuid"
	qdrant "github.com/qdrant/go-client/qdrant"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

// Payload keys reserved by the driver. Qdrant point ids must be numeric or
// UUID, so the record id is hashed into a deterministic UUID for the point
// and carried verbatim in the payload.
const (
	payloadKeyID   = "id"
	payloadKeyText = "text"
)

// pointID derives the stable UUID point id for a record id. The mapping is
// deterministic, so upserting the same record id always hits the same point.
func pointID(recordID string) *qdrant.PointId {
	return qdrant.NewID(uuid.NewSHA1(uuid.NameSpaceOID, []byte(recordID)).String())
}

// buildFilter translates a vectorstore.FilterSet onto Qdrant's native filter
// model. Returns nil for an empty set.
func buildFilter(fs *vectorstore.FilterSet) (*qdrant.Filter, error) {
	if fs.Empty() {
		return nil, nil
	}

	convert := func(cs *vectorstore.ConditionSet) ([]*qdrant.Condition, error) {
		if cs == nil || len(cs.Conditions) == 0 {
			return nil, nil
		}
		out := make([]*qdrant.Condition, 0, len(cs.Conditions))
		for _, cond := range cs.Conditions {
			qc, err := convertCondition(cond)
			if err != nil {
				return nil, err
			}
			out = append(out, qc)
		}
		return out, nil
	}

	must, err := convert(fs.Must)
	if err != nil {
		return nil, err
	}
	should, err := convert(fs.Should)
	if err != nil {
		return nil, err
	}
	mustNot, err := convert(fs.MustNot)
	if err != nil {
		return nil, err
	}

	return &qdrant.Filter{
		Must:    must,
		Should:  should,
		MustNot: mustNot,
	}, nil
}

func convertCondition(cond vectorstore.Condition) (*qdrant.Condition, error) {
	switch c := cond.(type) {
	case *vectorstore.MatchCondition:
		return convertMatch(c)
	case *vectorstore.MatchAnyCondition:
		return convertMatchAny(c)
	case *vectorstore.NumericRangeCondition:
		if c.Field == "" {
			return nil, fmt.Errorf("%w: range condition requires a field", vectorstore.ErrValidation)
		}
		if c.Range.Gt == nil && c.Range.Gte == nil && c.Range.Lt == nil && c.Range.Lte == nil {
			return nil, fmt.Errorf("%w: range condition on %q has no bounds", vectorstore.ErrValidation, c.Field)
		}
		return qdrant.NewRange(c.Field, &qdrant.Range{
			Gt:  c.Range.Gt,
			Gte: c.Range.Gte,
			Lt:  c.Range.Lt,
			Lte: c.Range.Lte,
		}), nil
	default:
		return nil, fmt.Errorf("%w: unsupported filter condition %T", vectorstore.ErrValidation, cond)
	}
}

func convertMatch(c *vectorstore.MatchCondition) (*qdrant.Condition, error) {
	if c.Field == "" {
		return nil, fmt.Errorf("%w: match condition requires a field", vectorstore.ErrValidation)
	}
	switch v := c.Value.(type) {
	case string:
		return qdrant.NewMatch(c.Field, v), nil
	case bool:
		return qdrant.NewMatchBool(c.Field, v), nil
	case int:
		return qdrant.NewMatchInt(c.Field, int64(v)), nil
	case int64:
		return qdrant.NewMatchInt(c.Field, v), nil
	case float64:
		// Qdrant has no float equality match; an equal-bounds range is the
		// closest expressible predicate.
		return qdrant.NewRange(c.Field, &qdrant.Range{Gte: &v, Lte: &v}), nil
	default:
		return nil, fmt.Errorf("%w: unsupported match value type %T", vectorstore.ErrValidation, c.Value)
	}
}

func convertMatchAny(c *vectorstore.MatchAnyCondition) (*qdrant.Condition, error) {
	if c.Field == "" || len(c.Values) == 0 {
		return nil, fmt.Errorf("%w: matchAny condition requires a field and values", vectorstore.ErrValidation)
	}
	switch c.Values[0].(type) {
	case string:
		keywords := make([]string, 0, len(c.Values))
		for _, v := range c.Values {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("%w: mixed matchAny value types", vectorstore.ErrValidation)
			}
			keywords = append(keywords, s)
		}
		return qdrant.NewMatchKeywords(c.Field, keywords...), nil
	case int, int64:
		ints := make([]int64, 0, len(c.Values))
		for _, v := range c.Values {
			switch n := v.(type) {
			case int:
				ints = append(ints, int64(n))
			case int64:
				ints = append(ints, n)
			default:
				return nil, fmt.Errorf("%w: mixed matchAny value types", vectorstore.ErrValidation)
			}
		}
		return qdrant.NewMatchInts(c.Field, ints...), nil
	default:
		return nil, fmt.Errorf("%w: unsupported matchAny value type %T", vectorstore.ErrValidation, c.Values[0])
	}
}

// buildPayload assembles the point payload: reserved id/text keys plus the
// record metadata. Metadata may not shadow the reserved keys.
func buildPayload(r vectorstore.Record) (map[string]*qdrant.Value, error) {
	payload := make(map[string]any, len(r.Metadata)+2)
	for k, v := range r.Metadata {
		if k == payloadKeyID || k == payloadKeyText {
			return nil, fmt.Errorf("%w: metadata key %q is reserved", vectorstore.ErrValidation, k)
		}
		payload[k] = v
	}
	payload[payloadKeyID] = r.ID
	payload[payloadKeyText] = r.Text
	return qdrant.NewValueMap(payload), nil
}

// extractResult splits a scored point's payload back into id, text, and
// metadata.
func extractResult(p *qdrant.ScoredPoint) vectorstore.Result {
	res := vectorstore.Result{Score: p.Score}
	var meta map[string]any
	for k, v := range p.Payload {
		switch k {
		case payloadKeyID:
			res.ID = v.GetStringValue()
		case payloadKeyText:
			res.Text = v.GetStringValue()
		default:
			if meta == nil {
				meta = make(map[string]any)
			}
			meta[k] = valueToAny(v)
		}
	}
	res.Metadata = meta
	return res
}

func valueToAny(v *qdrant.Value) any {
	switch kind := v.GetKind().(type) {
	case *qdrant.Value_StringValue:
		return kind.StringValue
	case *qdrant.Value_IntegerValue:
		return kind.IntegerValue
	case *qdrant.Value_DoubleValue:
		return kind.DoubleValue
	case *qdrant.Value_BoolValue:
		return kind.BoolValue
	case *qdrant.Value_ListValue:
		items := kind.ListValue.GetValues()
		out := make([]any, 0, len(items))
		for _, item := range items {
			out = append(out, valueToAny(item))
		}
		return out
	case *qdrant.Value_StructValue:
		fields := kind.StructValue.GetFields()
		out := make(map[string]any, len(fields))
		for k, item := range fields {
			out[k] = valueToAny(item)
		}
		return out
	default:
		return nil
	}
}
