package grammar

import (
	"fmt"
	"strings"
)

// ParserCreationErrorKind classifies why a grammar failed to prepare.
type ParserCreationErrorKind int

const (
	LeftRecursion ParserCreationErrorKind = iota
	DuplicateAlternative
	Ambiguity
	InvalidRepetition
	UnknownReference
	DuplicateTokenID
	InvalidProductionName
)

func (k ParserCreationErrorKind) String() string {
	switch k {
	case LeftRecursion:
		return "left recursion"
	case DuplicateAlternative:
		return "duplicate alternative"
	case Ambiguity:
		return "ambiguity"
	case InvalidRepetition:
		return "invalid repetition"
	case UnknownReference:
		return "unknown reference"
	case DuplicateTokenID:
		return "duplicate token ID"
	case InvalidProductionName:
		return "invalid production name"
	default:
		return "unknown"
	}
}

// ParserCreationError reports a defect found while preparing a
// grammar: the production(s) involved and a human-readable message.
type ParserCreationError struct {
	Kind        ParserCreationErrorKind
	Productions []string
	Message     string
}

func (e *ParserCreationError) Error() string {
	return fmt.Sprintf("grammar: %s in %s: %s", e.Kind, strings.Join(e.Productions, ", "), e.Message)
}
