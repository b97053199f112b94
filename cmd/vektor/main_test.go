package main

import "testing"

func TestStoreOptionKnownDrivers(t *testing.T) {
	for _, driver := range []string{"", "postgres", "qdrant"} {
		opt, err := storeOption(driver)
		if err != nil {
			t.Errorf("driver %q: unexpected error: %v", driver, err)
		}
		if opt == nil {
			t.Errorf("driver %q: expected a store module", driver)
		}
	}

	opt, err := storeOption("none")
	if err != nil {
		t.Fatalf("driver \"none\": unexpected error: %v", err)
	}
	if opt != nil {
		t.Error("driver \"none\" must not contribute a store module")
	}
}

func TestBuildOptionsRejectsUnknownDriver(t *testing.T) {
	if _, err := buildOptions("postgrse"); err == nil {
		t.Fatal("expected a startup fault for a misspelled driver, got nil")
	}
	if _, err := buildOptions("memory"); err == nil {
		t.Fatal("expected a startup fault for an unsupported driver, got nil")
	}
}
