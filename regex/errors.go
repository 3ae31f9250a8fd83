package regex

import "fmt"

// SyntaxError reports a malformed pattern string, with Pos the rune
// offset into the pattern where the problem was detected.
type SyntaxError struct {
	Pos     int
	Message string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("regex: syntax error at position %d: %s", e.Pos, e.Message)
}
