package session

import (
	"github.com/abhisek/certquest/internal/pack"
	"github.com/abhisek/certquest/internal/scoring"
)

// Event is an abstract render event emitted by the session core. The
// presentation layer decides how each event is drawn; no formatting or
// keystroke handling lives on this side of the boundary.
type Event interface{ isEvent() }

// ShowIntro announces entry into a domain.
type ShowIntro struct {
	DomainID   int
	DomainName string
	ThemeKey   string
	Header     pack.DomainHeader
	Intro      pack.IntroText
	HasIntro   bool
}

// ShowScenario carries the themed content for the current scenario.
type ShowScenario struct {
	ScenarioID string
	DomainID   int
	ThemeKey   string
	Content    pack.ThemeContent
	Position   int // 1-based within the domain
	Total      int
}

// ShowOutcome reports the result of one scored answer.
type ShowOutcome struct {
	Outcome       scoring.Outcome
	ResponseText  string // success text or the resolved failure text
	Reference     string // study reference for wrong answers
	CorrectChoice int    // 1-based, for display after a wrong answer
	CorrectText   string
	State         PlayerState
}

// DomainCompleted signals that the current domain has no scenarios left.
type DomainCompleted struct {
	DomainID   int
	DomainName string
}

// ThemeSwitched signals a mid-session theme change.
type ThemeSwitched struct {
	ThemeKey    string
	DisplayName string
}

// ShowSummary carries the final session summary. Terminal.
type ShowSummary struct {
	Summary *Summary
}

// ShowStatus is the side-channel response to a status request.
type ShowStatus struct {
	State PlayerState
}

// ShowHelp is the side-channel response to a help request.
type ShowHelp struct {
	ThemeCount  int
	DomainCount int
	PackName    string
}

func (ShowIntro) isEvent()       {}
func (ShowScenario) isEvent()    {}
func (ShowOutcome) isEvent()     {}
func (DomainCompleted) isEvent() {}
func (ThemeSwitched) isEvent()   {}
func (ShowSummary) isEvent()     {}
func (ShowStatus) isEvent()      {}
func (ShowHelp) isEvent()        {}

// InputEvent is an abstract input accepted while awaiting an answer or a
// domain selection.
type InputEvent interface{ isInput() }

// ChoiceSelected picks a 1-based answer choice.
type ChoiceSelected struct {
	N int
}

// SwitchTheme changes the active theme. An empty Key cycles to the next
// declared theme.
type SwitchTheme struct {
	Key string
}

// Quit ends the session early.
type Quit struct{}

// Help requests the help side-channel; it never advances state.
type Help struct{}

// Status requests the status side-channel; it never advances state.
type Status struct{}

func (ChoiceSelected) isInput() {}
func (SwitchTheme) isInput()    {}
func (Quit) isInput()           {}
func (Help) isInput()           {}
func (Status) isInput()         {}
