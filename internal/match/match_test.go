package match

import (
	"testing"

	"github.com/rcliao/secrets-tracker/internal/model"
)

func TestNormalize_StripsPunctuationAndCase(t *testing.T) {
	got := Normalize("  Has a GAMBLING debt!!  (from college) ")
	want := "has a gambling debt from college"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestNormalize_KeepsCyrillic(t *testing.T) {
	got := Normalize("Тайный ДОЛГ, казино!")
	want := "тайный долг казино"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestSimilarity_SubstringIsExactMatch(t *testing.T) {
	if s := Similarity("has a gambling debt", "gambling debt"); s != 1 {
		t.Errorf("expected 1 for substring relation, got %v", s)
	}
	if s := Similarity("gambling debt", "has a gambling debt from college"); s != 1 {
		t.Errorf("expected 1 for reverse substring relation, got %v", s)
	}
}

func TestSimilarity_TokenOverlap(t *testing.T) {
	// Shared: gambling, debt. Larger set: gambling, debt, from, college.
	s := Similarity("owes a gambling debt", "a gambling debt from college")
	if s < 0.45 {
		t.Errorf("expected overlap >= 0.45, got %v", s)
	}

	if s := Similarity("afraid of heights", "stole the mayor's ring"); s != 0 {
		t.Errorf("expected 0 for unrelated texts, got %v", s)
	}
}

func TestSimilarity_ShortWordFallback(t *testing.T) {
	// No 4-rune words on the left side; the 3-rune fallback must kick in.
	if s := Similarity("has the map", "has the map too old"); s == 0 {
		t.Error("expected fallback tokens to produce a non-zero score")
	}
}

func TestSimilarity_EmptyTokenSets(t *testing.T) {
	if s := Similarity("!!", "??"); s != 0 {
		t.Errorf("expected 0 for unequal empty-token texts, got %v", s)
	}
	if s := Similarity("a b", "a b"); s != 1 {
		t.Errorf("expected 1 for equal normalized texts, got %v", s)
	}
}

func TestIsDuplicate_Reflexive(t *testing.T) {
	for _, text := range []string{"x", "has a gambling debt", "Тайный долг"} {
		if !IsDuplicate(text, []string{text}) {
			t.Errorf("expected %q to be a duplicate of itself", text)
		}
	}
}

func TestIsDuplicate_Threshold(t *testing.T) {
	existing := []string{"has a gambling debt"}
	if !IsDuplicate("has a gambling debt from college", existing) {
		t.Error("expected near-identical text to count as duplicate")
	}
	if IsDuplicate("secretly writes poetry", existing) {
		t.Error("expected unrelated text to pass")
	}
}

func TestNormalizeTag_ExactAndKeyword(t *testing.T) {
	cases := map[string]model.Tag{
		"dangerous":       model.TagDangerous,
		"KOMPROMAT":       model.TagKompromat,
		"Dangerous!!":     model.TagDangerous,
		"very personal":   model.TagPersonal,
		"blackmail stuff": model.TagKompromat,
		"опасная тайна":   model.TagDangerous,
		"":                model.TagNone,
		"misc":            model.TagNone,
	}
	for raw, want := range cases {
		if got := NormalizeTag(raw); got != want {
			t.Errorf("NormalizeTag(%q): expected %q, got %q", raw, want, got)
		}
	}
}

func TestNormalizeTag_Idempotent(t *testing.T) {
	for _, raw := range []string{"Dangerous!!", "none", "леверидж", "шантаж", "random"} {
		once := NormalizeTag(raw)
		twice := NormalizeTag(string(once))
		if once != twice {
			t.Errorf("NormalizeTag(%q) not idempotent: %q then %q", raw, once, twice)
		}
		if !model.ValidTags[once] {
			t.Errorf("NormalizeTag(%q) returned value outside the closed set: %q", raw, once)
		}
	}
}
