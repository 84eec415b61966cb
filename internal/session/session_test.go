package session

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/abhisek/certquest/internal/pack"
)

func themed(prefix string) map[string]pack.ThemeContent {
	return map[string]pack.ThemeContent{
		"fantasy": {
			Title:       "F-" + prefix,
			Narrative:   "fantasy narrative " + prefix,
			Choices:     []string{"fa", "fb", "fc", "fd"},
			SuccessText: "fantasy success " + prefix,
		},
		"corporate": {
			Title:       "C-" + prefix,
			Narrative:   "corporate narrative " + prefix,
			Choices:     []string{"ca", "cb", "cc", "cd"},
			SuccessText: "corporate success " + prefix,
		},
	}
}

func testPack() *pack.CertificationPack {
	return &pack.CertificationPack{
		ID:   "netplus",
		Name: "Network+",
		Themes: pack.NewThemeSet(
			[]string{"fantasy", "corporate"},
			map[string]pack.ThemeDefinition{
				"fantasy":   {DisplayName: "Fantasy Quest", VictoryMessage: "The realm is saved."},
				"corporate": {DisplayName: "Corporate Ladder"},
			},
		),
		Domains: []pack.Domain{
			{ID: 1, Name: "Networking Concepts", ShortName: "Concepts", Themes: map[string]pack.DomainHeader{
				"fantasy":   {Title: "THE TOWER", Subtitle: "Climb"},
				"corporate": {Title: "Orientation", Subtitle: "Day one"},
			}},
			{ID: 2, Name: "Implementation", ShortName: "Impl", Themes: map[string]pack.DomainHeader{
				"fantasy":   {Title: "THE FORGE"},
				"corporate": {Title: "Build Sprint"},
			}},
		},
		Scoring: pack.ScoringConfig{
			StartingHP: 100,
			MaxHP:      100,
			Titles: []pack.TitleRung{
				{Threshold: 0, Labels: map[string]string{"fantasy": "Peasant", "corporate": "Intern"}},
				{Threshold: 100, Labels: map[string]string{"fantasy": "Squire", "corporate": "Analyst"}},
			},
			Performance: pack.Performance{Passing: 70},
		},
		Scenarios: map[int][]pack.Scenario{
			1: {
				{ID: "d1s1", Domain: 1, CorrectIndex: 2, XPReward: 50, HPPenalty: 20,
					FailureText: "wrong d1s1", DomainReference: "1.1", Themes: themed("D1S1")},
				{ID: "d1s2", Domain: 1, CorrectIndex: 0, XPReward: 50, HPPenalty: 20,
					FailureText: "wrong d1s2", Themes: themed("D1S2")},
			},
			2: {
				{ID: "d2s1", Domain: 2, CorrectIndex: 1, XPReward: 75, HPPenalty: 25,
					FailureText: "wrong d2s1", Themes: themed("D2S1")},
			},
		},
		Intros: map[int]pack.Intro{
			1: {PerTheme: map[string]pack.IntroText{
				"fantasy": {Introduction: "The tower looms.", Narrator: "THE CHRONICLER"},
			}},
		},
	}
}

func singleThemePack() *pack.CertificationPack {
	p := testPack()
	p.Themes = pack.NewThemeSet([]string{"fantasy"}, map[string]pack.ThemeDefinition{
		"fantasy": {DisplayName: "Fantasy Quest"},
	})
	return p
}

// startedSession returns a session already in domain 1, awaiting an answer.
func startedSession(t *testing.T) *Session {
	t.Helper()
	s := New(testPack(), "Ada")
	require.NoError(t, s.SelectTheme("fantasy"))
	_, err := s.SelectDomain(1)
	require.NoError(t, err)
	return s
}

func TestNewMultiThemeWaitsForTheme(t *testing.T) {
	s := New(testPack(), "Ada")
	if s.Phase() != PhaseSelectingTheme {
		t.Errorf("phase = %s, want %s", s.Phase(), PhaseSelectingTheme)
	}
	if s.Player().HP != 100 || s.Player().MaxHP != 100 {
		t.Errorf("player HP = %d/%d, want 100/100", s.Player().HP, s.Player().MaxHP)
	}
}

func TestNewSingleThemeAutoSelects(t *testing.T) {
	s := New(singleThemePack(), "Ada")
	if s.Phase() != PhaseSelectingDomain {
		t.Errorf("phase = %s, want %s", s.Phase(), PhaseSelectingDomain)
	}
	if s.Player().ThemeKey != "fantasy" {
		t.Errorf("theme = %q, want fantasy", s.Player().ThemeKey)
	}
	if s.Player().Title != "Peasant" {
		t.Errorf("title = %q, want Peasant", s.Player().Title)
	}
}

func TestSelectTheme(t *testing.T) {
	s := New(testPack(), "Ada")

	if err := s.SelectTheme("pirate"); !errors.Is(err, ErrUnknownTheme) {
		t.Errorf("err = %v, want ErrUnknownTheme", err)
	}
	if err := s.SelectTheme("corporate"); err != nil {
		t.Fatalf("SelectTheme: %v", err)
	}
	if s.Phase() != PhaseSelectingDomain {
		t.Errorf("phase = %s, want %s", s.Phase(), PhaseSelectingDomain)
	}
	if err := s.SelectTheme("fantasy"); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("second SelectTheme err = %v, want ErrWrongPhase", err)
	}
}

func TestSelectDomain(t *testing.T) {
	s := New(testPack(), "Ada")
	require.NoError(t, s.SelectTheme("fantasy"))

	if _, err := s.SelectDomain(9); !errors.Is(err, ErrDomainUnavailable) {
		t.Errorf("unknown domain err = %v, want ErrDomainUnavailable", err)
	}

	events, err := s.SelectDomain(1)
	require.NoError(t, err)
	require.Len(t, events, 2)

	intro, ok := events[0].(ShowIntro)
	require.True(t, ok, "first event %T", events[0])
	require.Equal(t, "THE TOWER", intro.Header.Title)
	require.True(t, intro.HasIntro)
	require.Equal(t, "The tower looms.", intro.Intro.Introduction)

	sc, ok := events[1].(ShowScenario)
	require.True(t, ok, "second event %T", events[1])
	require.Equal(t, "d1s1", sc.ScenarioID)
	require.Equal(t, "F-D1S1", sc.Content.Title)
	require.Equal(t, 1, sc.Position)
	require.Equal(t, 2, sc.Total)

	require.Equal(t, PhaseAwaitingAnswer, s.Phase())

	if _, err := s.SelectDomain(2); !errors.Is(err, ErrWrongPhase) {
		t.Errorf("mid-scenario SelectDomain err = %v, want ErrWrongPhase", err)
	}
}

func TestCorrectAnswerAdvances(t *testing.T) {
	s := startedSession(t)

	events, err := s.Apply(ChoiceSelected{N: 3}) // d1s1 correct index 2
	require.NoError(t, err)
	require.Len(t, events, 2)

	out, ok := events[0].(ShowOutcome)
	require.True(t, ok)
	require.True(t, out.Outcome.Correct)
	require.Equal(t, 50, out.Outcome.XPAwarded)
	require.Equal(t, "fantasy success D1S1", out.ResponseText)

	next, ok := events[1].(ShowScenario)
	require.True(t, ok)
	require.Equal(t, "d1s2", next.ScenarioID)

	player := s.Player()
	require.Equal(t, 50, player.XP)
	require.Equal(t, 100, player.HP)
	require.Equal(t, 1, player.Correct)
}

func TestWrongAnswerLosesHP(t *testing.T) {
	s := startedSession(t)

	events, err := s.Apply(ChoiceSelected{N: 1})
	require.NoError(t, err)

	out, ok := events[0].(ShowOutcome)
	require.True(t, ok)
	require.False(t, out.Outcome.Correct)
	require.Equal(t, 20, out.Outcome.HPLost)
	require.Equal(t, "wrong d1s1", out.ResponseText)
	require.Equal(t, "1.1", out.Reference)
	require.Equal(t, 3, out.CorrectChoice)
	require.Equal(t, "fc", out.CorrectText)

	player := s.Player()
	require.Equal(t, 0, player.XP)
	require.Equal(t, 80, player.HP)
	require.Equal(t, 1, player.Wrong)
}

func TestInvalidChoiceLeavesStateUnchanged(t *testing.T) {
	s := startedSession(t)
	before := s.Player()

	for _, n := range []int{0, 5, -1} {
		_, err := s.Apply(ChoiceSelected{N: n})
		if !errors.Is(err, ErrInvalidChoice) {
			t.Errorf("Apply(%d) err = %v, want ErrInvalidChoice", n, err)
		}
	}

	after := s.Player()
	if after.XP != before.XP || after.HP != before.HP || after.Correct != before.Correct || after.Wrong != before.Wrong {
		t.Errorf("state changed on invalid input: %+v -> %+v", before, after)
	}
	if s.Phase() != PhaseAwaitingAnswer {
		t.Errorf("phase = %s, want %s", s.Phase(), PhaseAwaitingAnswer)
	}
}

func TestThemeSwitchRoundTrip(t *testing.T) {
	s := startedSession(t)
	before := s.Player()

	events, err := s.Apply(SwitchTheme{Key: "corporate"})
	require.NoError(t, err)
	require.Len(t, events, 2)

	switched, ok := events[0].(ThemeSwitched)
	require.True(t, ok)
	require.Equal(t, "corporate", switched.ThemeKey)
	require.Equal(t, "Corporate Ladder", switched.DisplayName)

	sc, ok := events[1].(ShowScenario)
	require.True(t, ok)
	require.Equal(t, "d1s1", sc.ScenarioID, "same scenario, new skin")
	require.Equal(t, "C-D1S1", sc.Content.Title)

	// Switching never touches the score or the position.
	after := s.Player()
	require.Equal(t, before.XP, after.XP)
	require.Equal(t, before.HP, after.HP)
	require.Equal(t, "Intern", after.Title, "title re-rendered in new theme")

	// Round trip back restores the original content exactly.
	events, err = s.Apply(SwitchTheme{Key: "fantasy"})
	require.NoError(t, err)
	sc = events[1].(ShowScenario)
	require.Equal(t, "d1s1", sc.ScenarioID)
	require.Equal(t, "F-D1S1", sc.Content.Title)
}

func TestThemeSwitchCycles(t *testing.T) {
	s := startedSession(t)

	events, err := s.Apply(SwitchTheme{})
	require.NoError(t, err)
	require.Equal(t, "corporate", events[0].(ThemeSwitched).ThemeKey)

	events, err = s.Apply(SwitchTheme{})
	require.NoError(t, err)
	require.Equal(t, "fantasy", events[0].(ThemeSwitched).ThemeKey, "cycle wraps around")

	_, err = s.Apply(SwitchTheme{Key: "pirate"})
	require.ErrorIs(t, err, ErrUnknownTheme)
}

func TestDefeatEndsSession(t *testing.T) {
	p := testPack()
	p.Scoring.StartingHP = 20
	p.Scoring.MaxHP = 20

	s := New(p, "Ada")
	require.NoError(t, s.SelectTheme("fantasy"))
	_, err := s.SelectDomain(1)
	require.NoError(t, err)

	events, err := s.Apply(ChoiceSelected{N: 1})
	require.NoError(t, err)
	require.Len(t, events, 2)

	out := events[0].(ShowOutcome)
	require.True(t, out.Outcome.Defeated)

	sum, ok := events[1].(ShowSummary)
	require.True(t, ok, "second event %T", events[1])
	require.Equal(t, OutcomeDefeated, sum.Summary.Outcome)
	require.False(t, sum.Summary.Passed)
	require.Equal(t, 0, sum.Summary.HP)
	require.Equal(t, PhaseComplete, s.Phase())

	_, err = s.Apply(ChoiceSelected{N: 1})
	require.ErrorIs(t, err, ErrWrongPhase)
}

func TestCompleteRunPasses(t *testing.T) {
	s := New(testPack(), "Ada")
	require.NoError(t, s.SelectTheme("fantasy"))

	_, err := s.SelectDomain(1)
	require.NoError(t, err)

	// d1s1 correct is 2, d1s2 correct is 0.
	_, err = s.Apply(ChoiceSelected{N: 3})
	require.NoError(t, err)
	events, err := s.Apply(ChoiceSelected{N: 1})
	require.NoError(t, err)

	// Domain 1 finished, domain 2 still open.
	require.Len(t, events, 2)
	done, ok := events[1].(DomainCompleted)
	require.True(t, ok, "second event %T", events[1])
	require.Equal(t, 1, done.DomainID)
	require.Equal(t, PhaseSelectingDomain, s.Phase())

	choices := s.SelectableDomains()
	require.Len(t, choices, 1)
	require.Equal(t, 2, choices[0].ID)

	if _, err := s.SelectDomain(1); !errors.Is(err, ErrDomainUnavailable) {
		t.Errorf("finished domain err = %v, want ErrDomainUnavailable", err)
	}

	_, err = s.SelectDomain(2)
	require.NoError(t, err)
	events, err = s.Apply(ChoiceSelected{N: 2})
	require.NoError(t, err)
	require.Len(t, events, 3)

	sum, ok := events[2].(ShowSummary)
	require.True(t, ok, "last event %T", events[2])
	require.Equal(t, OutcomeCompleted, sum.Summary.Outcome)
	require.True(t, sum.Summary.Passed)
	require.Equal(t, 100.0, sum.Summary.Accuracy)
	require.Equal(t, 175, sum.Summary.XP)
	require.Equal(t, "Squire", sum.Summary.Title)
	require.Equal(t, "The realm is saved.", sum.Summary.VictoryMessage)
	require.Equal(t, "Exemplary", sum.Summary.Rating)
	require.Len(t, sum.Summary.Domains, 2)
	require.Equal(t, "Concepts", sum.Summary.Domains[0].ShortName)
}

func TestCompletionBelowPassingAccuracyFails(t *testing.T) {
	p := testPack()
	p.Scoring.Performance.Passing = 90

	s := New(p, "Ada")
	require.NoError(t, s.SelectTheme("fantasy"))

	_, err := s.SelectDomain(1)
	require.NoError(t, err)
	_, err = s.Apply(ChoiceSelected{N: 3}) // correct
	require.NoError(t, err)
	_, err = s.Apply(ChoiceSelected{N: 2}) // wrong
	require.NoError(t, err)

	_, err = s.SelectDomain(2)
	require.NoError(t, err)
	events, err := s.Apply(ChoiceSelected{N: 2}) // correct
	require.NoError(t, err)

	sum := events[len(events)-1].(ShowSummary)
	require.Equal(t, OutcomeCompleted, sum.Summary.Outcome)
	require.False(t, sum.Summary.Passed, "2/3 accuracy is below the 90%% bar")
}

func TestQuit(t *testing.T) {
	s := startedSession(t)

	events, err := s.Apply(Quit{})
	require.NoError(t, err)
	require.Len(t, events, 1)

	sum := events[0].(ShowSummary)
	require.Equal(t, OutcomeQuit, sum.Summary.Outcome)
	require.False(t, sum.Summary.Passed)
	require.Equal(t, PhaseComplete, s.Phase())
}

func TestHelpAndStatusDoNotAdvance(t *testing.T) {
	s := startedSession(t)
	before := s.Player()

	events, err := s.Apply(Help{})
	require.NoError(t, err)
	help := events[0].(ShowHelp)
	require.Equal(t, "Network+", help.PackName)
	require.Equal(t, 2, help.ThemeCount)

	events, err = s.Apply(Status{})
	require.NoError(t, err)
	status := events[0].(ShowStatus)
	require.Equal(t, before.HP, status.State.HP)

	require.Equal(t, PhaseAwaitingAnswer, s.Phase())
	require.Equal(t, before, s.Player())
}

func TestAccuracy(t *testing.T) {
	ps := PlayerState{}
	if got := ps.Accuracy(); got != 0 {
		t.Errorf("Accuracy with no answers = %v, want 0", got)
	}
	ps = PlayerState{Correct: 3, Wrong: 1}
	if got := ps.Accuracy(); got != 75 {
		t.Errorf("Accuracy = %v, want 75", got)
	}
}
