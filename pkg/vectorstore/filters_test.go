package vectorstore

import (
	"encoding/json"
	"testing"
)

func TestFilterSet_Empty(t *testing.T) {
	var nilSet *FilterSet
	if !nilSet.Empty() {
		t.Error("nil FilterSet should be empty")
	}

	if !(&FilterSet{}).Empty() {
		t.Error("zero FilterSet should be empty")
	}

	fs := NewFilterSet(Must(NewMatch("lang", "en")))
	if fs.Empty() {
		t.Error("FilterSet with a Must condition should not be empty")
	}
}

func TestNewFilterSet_Clauses(t *testing.T) {
	fs := NewFilterSet(
		Must(NewMatch("status", "published")),
		Should(NewMatch("tag", "ml"), NewMatch("tag", "ai")),
		MustNot(NewMatch("draft", true)),
	)

	if len(fs.Must.Conditions) != 1 {
		t.Errorf("expected 1 Must condition, got %d", len(fs.Must.Conditions))
	}
	if len(fs.Should.Conditions) != 2 {
		t.Errorf("expected 2 Should conditions, got %d", len(fs.Should.Conditions))
	}
	if len(fs.MustNot.Conditions) != 1 {
		t.Errorf("expected 1 MustNot condition, got %d", len(fs.MustNot.Conditions))
	}
}

func TestFilterSet_JSONRoundTrip(t *testing.T) {
	gte := 0.5
	lt := 2.0
	fs := NewFilterSet(
		Must(
			NewMatch("lang", "en"),
			NewNumericRange("pages", NumericRange{Gte: &gte, Lt: &lt}),
		),
		Should(NewMatchAny("tag", "ml", "ai")),
	)

	data, err := json.Marshal(fs)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var decoded FilterSet
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if len(decoded.Must.Conditions) != 2 {
		t.Fatalf("expected 2 Must conditions, got %d", len(decoded.Must.Conditions))
	}

	match, ok := decoded.Must.Conditions[0].(*MatchCondition)
	if !ok {
		t.Fatalf("expected MatchCondition, got %T", decoded.Must.Conditions[0])
	}
	if match.Field != "lang" || match.Value != "en" {
		t.Errorf("unexpected match condition: %+v", match)
	}

	rng, ok := decoded.Must.Conditions[1].(*NumericRangeCondition)
	if !ok {
		t.Fatalf("expected NumericRangeCondition, got %T", decoded.Must.Conditions[1])
	}
	if rng.Field != "pages" || rng.Range.Gte == nil || *rng.Range.Gte != gte {
		t.Errorf("unexpected range condition: %+v", rng)
	}
	if rng.Range.Lt == nil || *rng.Range.Lt != lt {
		t.Errorf("Lt bound lost in round trip: %+v", rng.Range)
	}

	anyCond, ok := decoded.Should.Conditions[0].(*MatchAnyCondition)
	if !ok {
		t.Fatalf("expected MatchAnyCondition, got %T", decoded.Should.Conditions[0])
	}
	if len(anyCond.Values) != 2 {
		t.Errorf("expected 2 anyOf values, got %d", len(anyCond.Values))
	}
}

func TestConditionSet_UnmarshalUnknownCondition(t *testing.T) {
	var cs ConditionSet
	err := json.Unmarshal([]byte(`[{"field":"x","like":"%y%"}]`), &cs)
	if err == nil {
		t.Fatal("expected error for unknown condition shape")
	}
}
