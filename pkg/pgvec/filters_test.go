package pgvec

import (
	"errors"
	"strings"
	"testing"

	"github.com/arcadia-data/vektor/pkg/vectorstore"
)

func TestBuildFilterSQL_NilFilterSet(t *testing.T) {
	sql, args, err := buildFilterSQL(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "" || args != nil {
		t.Errorf("expected empty clause, got %q with %v", sql, args)
	}
}

func TestBuildFilterSQL_EmptyFilterSet(t *testing.T) {
	sql, args, err := buildFilterSQL(&vectorstore.FilterSet{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != "" || args != nil {
		t.Errorf("expected empty clause, got %q with %v", sql, args)
	}
}

func TestBuildFilterSQL_MustWithMatch(t *testing.T) {
	fs := vectorstore.NewFilterSet(
		vectorstore.Must(vectorstore.NewMatch("lang", "en")),
	)
	sql, args, err := buildFilterSQL(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sql != " WHERE (metadata->>? = ?)" {
		t.Errorf("unexpected clause: %q", sql)
	}
	if len(args) != 2 || args[0] != "lang" || args[1] != "en" {
		t.Errorf("unexpected args: %v", args)
	}
}

func TestBuildFilterSQL_ShouldJoinsWithOr(t *testing.T) {
	fs := vectorstore.NewFilterSet(
		vectorstore.Should(
			vectorstore.NewMatch("tag", "ml"),
			vectorstore.NewMatch("tag", "ai"),
		),
	)
	sql, args, err := buildFilterSQL(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sql, " OR ") {
		t.Errorf("expected OR join, got %q", sql)
	}
	if len(args) != 4 {
		t.Errorf("expected 4 args, got %v", args)
	}
}

func TestBuildFilterSQL_MustNotNegates(t *testing.T) {
	fs := vectorstore.NewFilterSet(
		vectorstore.MustNot(vectorstore.NewMatch("draft", true)),
	)
	sql, _, err := buildFilterSQL(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sql, "NOT ((metadata->>?)::boolean = ?)") {
		t.Errorf("expected negated boolean match, got %q", sql)
	}
}

func TestBuildFilterSQL_MatchAnyStrings(t *testing.T) {
	fs := vectorstore.NewFilterSet(
		vectorstore.Must(vectorstore.NewMatchAny("lang", "en", "de", "fr")),
	)
	sql, args, err := buildFilterSQL(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sql, "metadata->>? IN (?,?,?)") {
		t.Errorf("unexpected clause: %q", sql)
	}
	if len(args) != 4 {
		t.Errorf("expected 4 args (field + 3 values), got %v", args)
	}
}

func TestBuildFilterSQL_NumericRange(t *testing.T) {
	gte := 10.0
	lt := 100.0
	fs := vectorstore.NewFilterSet(
		vectorstore.Must(vectorstore.NewNumericRange("pages", vectorstore.NumericRange{Gte: &gte, Lt: &lt})),
	)
	sql, args, err := buildFilterSQL(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(sql, "(metadata->>?)::numeric >= ?") || !strings.Contains(sql, "(metadata->>?)::numeric < ?") {
		t.Errorf("unexpected clause: %q", sql)
	}
	if len(args) != 4 {
		t.Errorf("expected 4 args, got %v", args)
	}
}

func TestBuildFilterSQL_EmptyRangeRejected(t *testing.T) {
	fs := vectorstore.NewFilterSet(
		vectorstore.Must(vectorstore.NewNumericRange("pages", vectorstore.NumericRange{})),
	)
	_, _, err := buildFilterSQL(fs)
	if !errors.Is(err, vectorstore.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestBuildFilterSQL_MissingFieldRejected(t *testing.T) {
	fs := vectorstore.NewFilterSet(
		vectorstore.Must(vectorstore.NewMatch("", "x")),
	)
	_, _, err := buildFilterSQL(fs)
	if !errors.Is(err, vectorstore.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestBuildFilterSQL_MustAndMustNotCombined(t *testing.T) {
	fs := vectorstore.NewFilterSet(
		vectorstore.Must(vectorstore.NewMatch("lang", "en")),
		vectorstore.MustNot(vectorstore.NewMatch("archived", true)),
	)
	sql, args, err := buildFilterSQL(fs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(sql, " WHERE ") {
		t.Errorf("clause should start with WHERE: %q", sql)
	}
	if strings.Count(sql, "(metadata") != 2 {
		t.Errorf("expected two metadata predicates: %q", sql)
	}
	if len(args) != 4 {
		t.Errorf("expected 4 args, got %v", args)
	}
}
