package textutil

import (
	"math"
	"testing"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("next period"), 0},
		{"identical", NewFingerprint("Deliverables Progress"), NewFingerprint("deliverables progress"), 1},
		{"disjoint", NewFingerprint("Summary"), NewFingerprint("Challenges"), 0},
		{"half overlap", NewFingerprint("Deliverables"), NewFingerprint("Deliverables Progress"), 1 / math.Sqrt2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTokenizeDropsShortTokens(t *testing.T) {
	got := Tokenize("Q3 to-do: Next Period")
	want := []string{"next", "period"}
	if len(got) != len(want) {
		t.Fatalf("Tokenize() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Tokenize() = %v, want %v", got, want)
		}
	}
}

func TestClosest(t *testing.T) {
	candidates := []string{"Summary", "Deliverables Progress", "Challenges", "Next Period Activities"}
	if got, ok := Closest("Deliverables", candidates, 0.4); !ok || got != "Deliverables Progress" {
		t.Fatalf("Closest = %q, %v", got, ok)
	}
	if got, ok := Closest("Next Steps", candidates, 0.4); !ok || got != "Next Period Activities" {
		t.Fatalf("Closest = %q, %v", got, ok)
	}
	if _, ok := Closest("Budget", candidates, 0.4); ok {
		t.Fatal("expected no suggestion for unrelated title")
	}
	if _, ok := Closest("", candidates, 0.4); ok {
		t.Fatal("expected no suggestion for empty title")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		"board report.html":  "board report.html",
		"../../etc/passwd":   "-..-etc-passwd",
		"  q3:final?.md ":    "q3-final.md",
		"..":                 "",
		".hidden":            "hidden",
		"":                   "",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
