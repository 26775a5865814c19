package id

import (
	"testing"

	"github.com/google/uuid"
)

func TestUUIDGenerator_NewID(t *testing.T) {
	t.Parallel()

	gen := NewUUIDGenerator()
	first, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	second, err := gen.NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct ids, got %s twice", first)
	}
	if _, err := uuid.Parse(first); err != nil {
		t.Fatalf("expected uuid, got %q: %v", first, err)
	}
}

func TestSequence_NewID(t *testing.T) {
	t.Parallel()

	seq := &Sequence{Prefix: "team"}
	a, _ := seq.NewID()
	b, _ := seq.NewID()
	if a != "team-1" || b != "team-2" {
		t.Fatalf("unexpected sequence: %s, %s", a, b)
	}
}
