package scoring

import (
	"testing"

	"github.com/abhisek/certquest/internal/pack"
)

var themeOrder = []string{"fantasy", "corporate"}

func testTitles() []pack.TitleRung {
	return []pack.TitleRung{
		{Threshold: 0, Labels: map[string]string{"fantasy": "Peasant", "corporate": "Intern"}},
		{Threshold: 100, Labels: map[string]string{"fantasy": "Squire", "corporate": "Analyst"}},
		{Threshold: 300, Labels: map[string]string{"fantasy": "Knight", "corporate": "Manager"}},
	}
}

func testScenario() *pack.Scenario {
	return &pack.Scenario{
		ID:           "s1",
		CorrectIndex: 2,
		XPReward:     50,
		HPPenalty:    20,
	}
}

func TestApplyCorrect(t *testing.T) {
	cfg := pack.ScoringConfig{StartingHP: 100, MaxHP: 100, Titles: testTitles()}
	st, out := Apply(PlayerStats{XP: 0, HP: 100}, testScenario(), 2, cfg, "fantasy", themeOrder)

	if !out.Correct {
		t.Fatal("expected correct")
	}
	if st.XP != 50 || out.XPAwarded != 50 {
		t.Errorf("XP = %d awarded %d, want 50/50", st.XP, out.XPAwarded)
	}
	if st.HP != 100 || out.HPLost != 0 {
		t.Errorf("HP = %d lost %d, want 100/0", st.HP, out.HPLost)
	}
	if out.Defeated {
		t.Error("not defeated at full HP")
	}
}

func TestApplyWrong(t *testing.T) {
	cfg := pack.ScoringConfig{StartingHP: 100, MaxHP: 100, Titles: testTitles()}
	st, out := Apply(PlayerStats{XP: 50, HP: 100}, testScenario(), 0, cfg, "fantasy", themeOrder)

	if out.Correct {
		t.Fatal("expected wrong")
	}
	if st.XP != 50 {
		t.Errorf("XP changed on wrong answer: %d", st.XP)
	}
	if st.HP != 80 || out.HPLost != 20 {
		t.Errorf("HP = %d lost %d, want 80/20", st.HP, out.HPLost)
	}
}

func TestApplyHPFloorsAtZero(t *testing.T) {
	cfg := pack.ScoringConfig{StartingHP: 100, MaxHP: 100, Titles: testTitles()}
	s := testScenario()
	s.HPPenalty = 30

	st, out := Apply(PlayerStats{XP: 0, HP: 10}, s, 0, cfg, "fantasy", themeOrder)
	if st.HP != 0 {
		t.Errorf("HP = %d, want 0", st.HP)
	}
	if out.HPLost != 10 {
		t.Errorf("HPLost = %d, want the 10 actually lost", out.HPLost)
	}
	if !out.Defeated {
		t.Error("expected defeat at 0 HP")
	}
}

func TestApplyExactDefeat(t *testing.T) {
	cfg := pack.ScoringConfig{StartingHP: 100, MaxHP: 100, Titles: testTitles()}
	st, out := Apply(PlayerStats{XP: 0, HP: 20}, testScenario(), 1, cfg, "fantasy", themeOrder)
	if st.HP != 0 || !out.Defeated {
		t.Errorf("HP = %d defeated = %v, want 0/true", st.HP, out.Defeated)
	}
}

func TestApplyRegenClampsToMax(t *testing.T) {
	cfg := pack.ScoringConfig{StartingHP: 100, MaxHP: 100, RegenPerCorrect: 10, Titles: testTitles()}

	st, out := Apply(PlayerStats{XP: 0, HP: 95}, testScenario(), 2, cfg, "fantasy", themeOrder)
	if st.HP != 100 || out.HPHealed != 5 {
		t.Errorf("HP = %d healed %d, want 100/5", st.HP, out.HPHealed)
	}

	st, out = Apply(PlayerStats{XP: 0, HP: 100}, testScenario(), 2, cfg, "fantasy", themeOrder)
	if st.HP != 100 || out.HPHealed != 0 {
		t.Errorf("HP = %d healed %d at full HP, want 100/0", st.HP, out.HPHealed)
	}
}

func TestApplyTitlePromotion(t *testing.T) {
	cfg := pack.ScoringConfig{StartingHP: 100, MaxHP: 100, Titles: testTitles()}

	st, out := Apply(PlayerStats{XP: 50, HP: 100}, testScenario(), 2, cfg, "fantasy", themeOrder)
	if !out.TitleChanged || out.NewTitle != "Squire" {
		t.Errorf("title = %q changed = %v, want Squire/true", out.NewTitle, out.TitleChanged)
	}

	_, out = Apply(PlayerStats{XP: st.XP, HP: 100}, testScenario(), 2, cfg, "fantasy", themeOrder)
	if out.TitleChanged {
		t.Errorf("title changed again within the same rung: %q", out.NewTitle)
	}
}

func TestTitleFor(t *testing.T) {
	titles := testTitles()
	tests := []struct {
		name  string
		xp    int
		theme string
		want  string
	}{
		{"base rung", 0, "fantasy", "Peasant"},
		{"below next rung", 99, "corporate", "Intern"},
		{"exact threshold", 100, "fantasy", "Squire"},
		{"top rung", 1000, "corporate", "Manager"},
		{"unknown theme falls back to first declared", 100, "pirate", "Squire"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TitleFor(tt.xp, titles, tt.theme, themeOrder); got != tt.want {
				t.Errorf("TitleFor(%d, %q) = %q, want %q", tt.xp, tt.theme, got, tt.want)
			}
		})
	}
}

func TestTitleForDegenerateLadders(t *testing.T) {
	if got := TitleFor(100, nil, "fantasy", themeOrder); got != "Novice" {
		t.Errorf("empty ladder = %q, want Novice", got)
	}

	// Rung with no label for the active theme or the declared order still
	// yields whatever label it has.
	titles := []pack.TitleRung{{Threshold: 0, Labels: map[string]string{"pirate": "Deckhand"}}}
	if got := TitleFor(0, titles, "fantasy", themeOrder); got != "Deckhand" {
		t.Errorf("orphan label = %q, want Deckhand", got)
	}

	titles = []pack.TitleRung{{Threshold: 0, Labels: nil}}
	if got := TitleFor(0, titles, "fantasy", themeOrder); got != "Novice" {
		t.Errorf("unlabeled rung = %q, want Novice", got)
	}
}

func TestRating(t *testing.T) {
	tests := []struct {
		accuracy float64
		want     string
	}{
		{100, "Exemplary"},
		{90, "Exemplary"},
		{89.9, "Proficient"},
		{80, "Proficient"},
		{70, "Competent"},
		{60, "Developing"},
		{59.9, "Needs Improvement"},
		{0, "Needs Improvement"},
	}
	for _, tt := range tests {
		if got := Rating(tt.accuracy); got != tt.want {
			t.Errorf("Rating(%v) = %q, want %q", tt.accuracy, got, tt.want)
		}
	}
}
