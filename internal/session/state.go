package session

import "errors"

// Phase is the externally observable state of the session machine.
// Presenting and scoring are transient within a single Apply call, so
// they never appear between calls.
type Phase int

const (
	PhaseSelectingTheme Phase = iota
	PhaseSelectingDomain
	PhaseAwaitingAnswer
	PhaseComplete
)

func (p Phase) String() string {
	switch p {
	case PhaseSelectingTheme:
		return "selecting-theme"
	case PhaseSelectingDomain:
		return "selecting-domain"
	case PhaseAwaitingAnswer:
		return "awaiting-answer"
	case PhaseComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// OutcomeTag distinguishes the ways a session can end. All three are
// normal termination outcomes, not errors.
type OutcomeTag string

const (
	OutcomeCompleted OutcomeTag = "completed"
	OutcomeDefeated  OutcomeTag = "defeated"
	OutcomeQuit      OutcomeTag = "quit"
)

var (
	// ErrInvalidChoice is a local input error; the caller re-prompts
	// and session state is unchanged.
	ErrInvalidChoice = errors.New("choice out of range")

	// ErrWrongPhase is returned when an operation is not legal in the
	// current phase.
	ErrWrongPhase = errors.New("operation not valid in current phase")

	// ErrDomainUnavailable is returned for unknown or finished domains.
	ErrDomainUnavailable = errors.New("domain unavailable")

	// ErrUnknownTheme is returned for a theme key the pack does not declare.
	ErrUnknownTheme = errors.New("unknown theme key")
)

// PlayerState is owned exclusively by one session. It is never shared
// across sessions and is not persisted beyond the process lifetime.
type PlayerState struct {
	Name     string
	XP       int
	HP       int
	MaxHP    int
	ThemeKey string
	Title    string
	Correct  int
	Wrong    int

	// Progress maps domain id to traversal progress. Position is an
	// explicit index into the scenario index so ordering stays
	// unambiguous under theme switches.
	Progress map[int]*DomainProgress
}

// DomainProgress tracks traversal through one domain's scenario sequence.
type DomainProgress struct {
	Position int
	Correct  int
	Wrong    int
}

// Accuracy returns the overall accuracy percentage (0-100).
func (ps *PlayerState) Accuracy() float64 {
	total := ps.Correct + ps.Wrong
	if total == 0 {
		return 0
	}
	return float64(ps.Correct) / float64(total) * 100
}

// DomainChoice describes one selectable domain for the presentation layer.
type DomainChoice struct {
	ID        int
	Name      string
	ShortName string
	Total     int
	Remaining int
}
