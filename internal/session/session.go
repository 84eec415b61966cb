// Package session drives a single interactive run through one loaded
// certification pack: theme selection, domain traversal, answer scoring,
// and termination. The machine does no I/O of its own: it consumes
// abstract input events and emits abstract render events, leaving all
// drawing and key handling to the presentation layer.
package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/certquest/internal/pack"
	"github.com/abhisek/certquest/internal/scenario"
	"github.com/abhisek/certquest/internal/scoring"
	"github.com/abhisek/certquest/internal/themes"
)

// Session is the stateful core of one playthrough. It owns the
// PlayerState and reads the pack, index, and scoring engine as data
// sources on each transition. Single-threaded by design.
type Session struct {
	id      string
	pack    *pack.CertificationPack
	index   *scenario.Index
	phase   Phase
	player  PlayerState
	outcome OutcomeTag
	started time.Time

	currentDomain int
	current       *pack.Scenario
}

// New creates a session over a validated pack. If the pack declares
// exactly one theme it is auto-selected and the session starts at domain
// selection; otherwise a theme must be chosen first.
func New(p *pack.CertificationPack, playerName string) *Session {
	s := &Session{
		id:      uuid.NewString(),
		pack:    p,
		index:   scenario.NewIndex(p),
		phase:   PhaseSelectingTheme,
		started: time.Now(),
		player: PlayerState{
			Name:     playerName,
			HP:       p.Scoring.StartingHP,
			MaxHP:    p.Scoring.MaxHP,
			Progress: make(map[int]*DomainProgress, len(p.Domains)),
		},
	}
	for _, d := range p.Domains {
		s.player.Progress[d.ID] = &DomainProgress{}
	}
	if key, ok := themes.AutoSelect(p); ok {
		s.setTheme(key)
		s.phase = PhaseSelectingDomain
	}
	return s
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Phase returns the current machine phase.
func (s *Session) Phase() Phase { return s.phase }

// Player returns a copy of the current player state.
func (s *Session) Player() PlayerState { return s.player }

// Pack returns the pack this session runs over.
func (s *Session) Pack() *pack.CertificationPack { return s.pack }

// SelectTheme picks the active theme before the first scenario is read.
// Only legal while the session is waiting for a theme.
func (s *Session) SelectTheme(key string) error {
	if s.phase != PhaseSelectingTheme {
		return fmt.Errorf("select theme in phase %s: %w", s.phase, ErrWrongPhase)
	}
	if !s.pack.Themes.Has(key) {
		return fmt.Errorf("theme %q: %w", key, ErrUnknownTheme)
	}
	s.setTheme(key)
	s.phase = PhaseSelectingDomain
	return nil
}

// SelectableDomains returns the domains that still have unanswered
// scenarios, in pack order.
func (s *Session) SelectableDomains() []DomainChoice {
	var out []DomainChoice
	for _, d := range s.pack.Domains {
		prog := s.player.Progress[d.ID]
		remaining := s.index.Remaining(d.ID, prog.Position)
		if remaining == 0 {
			continue
		}
		out = append(out, DomainChoice{
			ID:        d.ID,
			Name:      d.Name,
			ShortName: s.pack.DomainShortName(d.ID),
			Total:     s.index.Len(d.ID),
			Remaining: remaining,
		})
	}
	return out
}

// SelectDomain enters a domain and presents its next unanswered scenario.
// Selecting a finished or unknown domain is disallowed.
func (s *Session) SelectDomain(id int) ([]Event, error) {
	if s.phase != PhaseSelectingDomain {
		return nil, fmt.Errorf("select domain in phase %s: %w", s.phase, ErrWrongPhase)
	}
	d, ok := s.pack.DomainByID(id)
	if !ok {
		return nil, fmt.Errorf("domain %d: %w", id, ErrDomainUnavailable)
	}
	prog := s.player.Progress[id]
	if s.index.Remaining(id, prog.Position) == 0 {
		return nil, fmt.Errorf("domain %d has no scenarios left: %w", id, ErrDomainUnavailable)
	}

	s.currentDomain = id

	intro := ShowIntro{
		DomainID:   id,
		DomainName: d.Name,
		ThemeKey:   s.player.ThemeKey,
	}
	if header, ok := themes.ResolveDomainHeader(d, s.player.ThemeKey); ok {
		intro.Header = header
	}
	if txt, ok := themes.IntroFor(s.pack, id, s.player.ThemeKey); ok {
		intro.Intro = txt
		intro.HasIntro = true
	}

	events := []Event{intro}
	events = append(events, s.present())
	return events, nil
}

// Apply feeds one input event to the machine and returns the render
// events it produced. Bad input (ErrInvalidChoice) leaves the session
// unchanged; the caller re-prompts. There is no crash path: unexpected
// content inconsistencies degrade to fallback text.
func (s *Session) Apply(ev InputEvent) ([]Event, error) {
	switch s.phase {
	case PhaseAwaitingAnswer:
		return s.applyAnswerPhase(ev)
	case PhaseSelectingDomain:
		return s.applySelectPhase(ev)
	default:
		return nil, fmt.Errorf("input in phase %s: %w", s.phase, ErrWrongPhase)
	}
}

func (s *Session) applyAnswerPhase(ev InputEvent) ([]Event, error) {
	switch ev := ev.(type) {
	case Help:
		return []Event{s.helpEvent()}, nil
	case Status:
		return []Event{ShowStatus{State: s.player}}, nil
	case Quit:
		return []Event{s.complete(OutcomeQuit)}, nil
	case SwitchTheme:
		return s.switchTheme(ev.Key)
	case ChoiceSelected:
		return s.score(ev.N)
	default:
		return nil, fmt.Errorf("unsupported input: %w", ErrInvalidChoice)
	}
}

func (s *Session) applySelectPhase(ev InputEvent) ([]Event, error) {
	switch ev.(type) {
	case Help:
		return []Event{s.helpEvent()}, nil
	case Status:
		return []Event{ShowStatus{State: s.player}}, nil
	case Quit:
		return []Event{s.complete(OutcomeQuit)}, nil
	default:
		return nil, fmt.Errorf("input in phase %s: %w", s.phase, ErrWrongPhase)
	}
}

// switchTheme changes the active theme and re-renders the current
// scenario. It does not consume an attempt or touch the score, and
// switching A -> B -> A restores the exact content previously shown.
func (s *Session) switchTheme(key string) ([]Event, error) {
	if key == "" {
		key = s.nextThemeKey()
	}
	if !s.pack.Themes.Has(key) {
		return nil, fmt.Errorf("theme %q: %w", key, ErrUnknownTheme)
	}
	s.setTheme(key)
	def := themes.Definition(s.pack, key)
	return []Event{
		ThemeSwitched{ThemeKey: key, DisplayName: def.DisplayName},
		s.present(),
	}, nil
}

// score applies a 1-based choice to the current scenario.
func (s *Session) score(n int) ([]Event, error) {
	if n < 1 || n > pack.ChoiceCount {
		return nil, fmt.Errorf("choice %d: %w", n, ErrInvalidChoice)
	}
	sc := s.current
	if sc == nil {
		return nil, fmt.Errorf("no current scenario: %w", ErrWrongPhase)
	}
	chosen := n - 1

	stats := scoring.PlayerStats{XP: s.player.XP, HP: s.player.HP}
	stats, out := scoring.Apply(stats, sc, chosen, s.pack.Scoring, s.player.ThemeKey, s.pack.Themes.Keys())
	s.player.XP = stats.XP
	s.player.HP = stats.HP
	s.player.Title = out.NewTitle

	prog := s.player.Progress[s.currentDomain]
	prog.Position++
	if out.Correct {
		s.player.Correct++
		prog.Correct++
	} else {
		s.player.Wrong++
		prog.Wrong++
	}

	events := []Event{s.outcomeEvent(sc, chosen, out)}

	if out.Defeated {
		events = append(events, s.complete(OutcomeDefeated))
		return events, nil
	}

	if s.index.Remaining(s.currentDomain, prog.Position) > 0 {
		events = append(events, s.present())
		return events, nil
	}

	events = append(events, DomainCompleted{
		DomainID:   s.currentDomain,
		DomainName: s.pack.DomainName(s.currentDomain),
	})
	s.current = nil

	if len(s.SelectableDomains()) > 0 {
		s.phase = PhaseSelectingDomain
		return events, nil
	}
	events = append(events, s.complete(OutcomeCompleted))
	return events, nil
}

// present loads the current domain's next scenario and emits it in the
// active theme, moving the machine to PhaseAwaitingAnswer.
func (s *Session) present() Event {
	prog := s.player.Progress[s.currentDomain]
	sc, ok := s.index.At(s.currentDomain, prog.Position)
	if !ok {
		// Callers guarantee a remaining scenario; degrade anyway.
		s.phase = PhaseSelectingDomain
		return DomainCompleted{DomainID: s.currentDomain, DomainName: s.pack.DomainName(s.currentDomain)}
	}
	s.current = sc
	s.phase = PhaseAwaitingAnswer
	return ShowScenario{
		ScenarioID: sc.ID,
		DomainID:   s.currentDomain,
		ThemeKey:   s.player.ThemeKey,
		Content:    themes.ContentOrFallback(s.pack, sc, s.player.ThemeKey),
		Position:   prog.Position + 1,
		Total:      s.index.Len(s.currentDomain),
	}
}

func (s *Session) outcomeEvent(sc *pack.Scenario, chosen int, out scoring.Outcome) Event {
	content := themes.ContentOrFallback(s.pack, sc, s.player.ThemeKey)
	ev := ShowOutcome{
		Outcome: out,
		State:   s.player,
	}
	if out.Correct {
		ev.ResponseText = content.SuccessText
		if ev.ResponseText == "" {
			ev.ResponseText = "Correct!"
		}
	} else {
		ev.ResponseText = sc.FailureTextFor(s.player.ThemeKey, chosen)
		ev.Reference = sc.DomainReference
		ev.CorrectChoice = sc.CorrectIndex + 1
		if sc.CorrectIndex < len(content.Choices) {
			ev.CorrectText = content.Choices[sc.CorrectIndex]
		}
	}
	return ev
}

func (s *Session) complete(tag OutcomeTag) Event {
	s.outcome = tag
	s.phase = PhaseComplete
	s.current = nil
	return ShowSummary{Summary: s.Summary()}
}

func (s *Session) helpEvent() Event {
	return ShowHelp{
		ThemeCount:  s.pack.Themes.Len(),
		DomainCount: len(s.pack.Domains),
		PackName:    s.pack.Name,
	}
}

func (s *Session) setTheme(key string) {
	s.player.ThemeKey = key
	s.player.Title = scoring.TitleFor(s.player.XP, s.pack.Scoring.Titles, key, s.pack.Themes.Keys())
}

func (s *Session) nextThemeKey() string {
	keys := s.pack.Themes.Keys()
	for i, key := range keys {
		if key == s.player.ThemeKey {
			return keys[(i+1)%len(keys)]
		}
	}
	if len(keys) > 0 {
		return keys[0]
	}
	return s.player.ThemeKey
}
