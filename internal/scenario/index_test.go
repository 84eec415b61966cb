package scenario

import (
	"testing"

	"github.com/abhisek/certquest/internal/pack"
)

func testPack(perDomainCap int) *pack.CertificationPack {
	return &pack.CertificationPack{
		ID: "netplus",
		Domains: []pack.Domain{
			{ID: 1, Name: "Concepts"},
			{ID: 3, Name: "Operations"},
		},
		Scoring: pack.ScoringConfig{ScenariosPerDomain: perDomainCap},
		Scenarios: map[int][]pack.Scenario{
			1: {{ID: "a"}, {ID: "b"}, {ID: "c"}},
			3: {{ID: "x"}},
		},
	}
}

func TestIndexPreservesFileOrder(t *testing.T) {
	idx := NewIndex(testPack(0))

	got := idx.ForDomain(1)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []string{"a", "b", "c"} {
		if got[i].ID != want {
			t.Errorf("position %d = %q, want %q", i, got[i].ID, want)
		}
	}
}

func TestIndexCapsToPrefix(t *testing.T) {
	idx := NewIndex(testPack(2))

	if idx.Len(1) != 2 {
		t.Fatalf("Len(1) = %d, want 2", idx.Len(1))
	}
	// The cap keeps the deterministic prefix, never a random sample.
	s, ok := idx.At(1, 1)
	if !ok || s.ID != "b" {
		t.Errorf("At(1,1) = %v/%v, want b", s, ok)
	}
	if _, ok := idx.At(1, 2); ok {
		t.Error("At past cap should report end of domain")
	}
	// Domains under the cap are untouched.
	if idx.Len(3) != 1 {
		t.Errorf("Len(3) = %d, want 1", idx.Len(3))
	}
}

func TestIndexAt(t *testing.T) {
	idx := NewIndex(testPack(0))

	tests := []struct {
		domain, pos int
		wantID      string
		wantOK      bool
	}{
		{1, 0, "a", true},
		{1, 2, "c", true},
		{1, 3, "", false},
		{1, -1, "", false},
		{3, 0, "x", true},
		{99, 0, "", false},
	}
	for _, tt := range tests {
		s, ok := idx.At(tt.domain, tt.pos)
		if ok != tt.wantOK {
			t.Errorf("At(%d,%d) ok = %v, want %v", tt.domain, tt.pos, ok, tt.wantOK)
			continue
		}
		if ok && s.ID != tt.wantID {
			t.Errorf("At(%d,%d) = %q, want %q", tt.domain, tt.pos, s.ID, tt.wantID)
		}
	}
}

func TestIndexByID(t *testing.T) {
	idx := NewIndex(testPack(0))

	s, ok := idx.ByID(1, "b")
	if !ok || s.ID != "b" {
		t.Errorf("ByID(1,b) = %v/%v", s, ok)
	}
	if _, ok := idx.ByID(1, "nope"); ok {
		t.Error("ByID found a scenario that does not exist")
	}
	if _, ok := idx.ByID(2, "a"); ok {
		t.Error("ByID found a scenario in an unknown domain")
	}
}

func TestIndexRemaining(t *testing.T) {
	idx := NewIndex(testPack(0))

	tests := []struct {
		domain, pos, want int
	}{
		{1, 0, 3},
		{1, 2, 1},
		{1, 3, 0},
		{1, 10, 0},
		{99, 0, 0},
	}
	for _, tt := range tests {
		if got := idx.Remaining(tt.domain, tt.pos); got != tt.want {
			t.Errorf("Remaining(%d,%d) = %d, want %d", tt.domain, tt.pos, got, tt.want)
		}
	}
}
