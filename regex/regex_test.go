package regex

import (
	"strings"
	"testing"
)

func mustCompile(t *testing.T, pattern string, ci bool) *Regexp {
	t.Helper()
	re, err := Compile(pattern, ci)
	if err != nil {
		t.Fatalf("Compile(%q) failed: %v", pattern, err)
	}
	return re
}

func matchLen(t *testing.T, re *Regexp, input string) int {
	t.Helper()
	return re.MatchFromPosition([]rune(input), 0)
}

func TestLiteralAndConcat(t *testing.T) {
	re := mustCompile(t, "abc", false)
	if got := matchLen(t, re, "abcd"); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
	if got := matchLen(t, re, "abx"); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestCharClass(t *testing.T) {
	re := mustCompile(t, "[A-Za-z_][A-Za-z0-9_]*", false)
	if got := matchLen(t, re, "x1_y9!"); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
	re2 := mustCompile(t, "[^0-9]+", false)
	if got := matchLen(t, re2, "ab12"); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestAlternation(t *testing.T) {
	re := mustCompile(t, "cat|car|carpet", false)
	if got := matchLen(t, re, "carpet"); got != 3 {
		t.Fatalf("got %d, want 3 (first alternative wins)", got)
	}
}

func TestGreedyVsReluctantVsPossessive(t *testing.T) {
	greedy := mustCompile(t, "a*aa", false)
	if got := matchLen(t, greedy, "aaaa"); got != 4 {
		t.Fatalf("greedy: got %d, want 4", got)
	}

	reluctant := mustCompile(t, "a*?b", false)
	if got := matchLen(t, reluctant, "aaab"); got != 4 {
		t.Fatalf("reluctant: got %d, want 4", got)
	}

	// A possessive quantifier consumes all the a's and never backs
	// off, so "a?+a" fails to match a single "a" (no input left for
	// the mandatory trailing "a").
	possessive := mustCompile(t, "a?+a", false)
	if got := matchLen(t, possessive, "a"); got != -1 {
		t.Fatalf("possessive: got %d, want -1 (no backtrack)", got)
	}
	if got := matchLen(t, possessive, "aa"); got != 2 {
		t.Fatalf("possessive: got %d, want 2", got)
	}
}

func TestQuantifierBounds(t *testing.T) {
	re := mustCompile(t, "a{2,4}", false)
	if got := matchLen(t, re, "aaaaaa"); got != 4 {
		t.Fatalf("got %d, want 4", got)
	}
	re2 := mustCompile(t, "a{3}", false)
	if got := matchLen(t, re2, "aa"); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestZeroQuantifierRejected(t *testing.T) {
	if _, err := ParsePattern("a{0}"); err == nil {
		t.Fatal("expected error for {0} quantifier")
	}
}

func TestAnchorsRejected(t *testing.T) {
	if _, err := ParsePattern("^abc$"); err == nil {
		t.Fatal("expected error for anchors")
	}
}

func TestEmptyPatternRejected(t *testing.T) {
	if _, err := ParsePattern(""); err == nil {
		t.Fatal("expected error for empty pattern")
	}
}

func TestEscapes(t *testing.T) {
	re := mustCompile(t, `\d+\s\w+`, false)
	if got := matchLen(t, re, "42 ok"); got != 5 {
		t.Fatalf("got %d, want 5", got)
	}
}

func TestOctalEscape(t *testing.T) {
	// \018 parses as octal \01 (value 1, SOH) followed by literal '8'.
	re := mustCompile(t, `\018`, false)
	input := string([]rune{1, '8'})
	if got := matchLen(t, re, input); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestHexEscape(t *testing.T) {
	re := mustCompile(t, `\x41B`, false)
	if got := matchLen(t, re, "AB"); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestUnicodeEscape(t *testing.T) {
	// The pattern is a backslash, "u00e9" (U+00E9, 'é') and "X".
	re := mustCompile(t, string(rune(92))+"u00e9X", false)
	if got := matchLen(t, re, "éX"); got != 2 {
		t.Fatalf("got %d, want 2", got)
	}
}

func TestCaseInsensitive(t *testing.T) {
	re := mustCompile(t, "abc", true)
	if got := matchLen(t, re, "ABC"); got != 3 {
		t.Fatalf("got %d, want 3", got)
	}
}

func TestWildcardExcludesNewlines(t *testing.T) {
	re := mustCompile(t, ".", false)
	if got := matchLen(t, re, "\n"); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
	if got := matchLen(t, re, "x"); got != 1 {
		t.Fatalf("got %d, want 1", got)
	}
}

// TestPathologicalInputBoundedStack exercises a classically
// catastrophic pattern against a long mismatching input, checking only
// that the match completes promptly rather than timing out; the
// explicit backtrack stack grows linearly with input length, not
// exponentially, because each loop iteration reuses the same split
// instruction.
func TestPathologicalInputBoundedStack(t *testing.T) {
	re := mustCompile(t, "a*", false)
	input := strings.Repeat("a", 20000) + "b"
	if got := matchLen(t, re, input); got != 20000 {
		t.Fatalf("got %d, want 20000", got)
	}
}
