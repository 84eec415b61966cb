// Package scoring applies answers to player stats. Everything here is a
// pure function of its inputs; the session machine owns the state.
package scoring

import "github.com/abhisek/certquest/internal/pack"

// PlayerStats is the numeric slice of player state the engine operates on.
type PlayerStats struct {
	XP int
	HP int
}

// Outcome describes the effect of one applied answer.
type Outcome struct {
	Correct      bool
	XPAwarded    int
	HPLost       int
	HPHealed     int
	NewTitle     string
	TitleChanged bool

	// Defeated is set when HP reached 0, a terminal failure condition
	// for the session.
	Defeated bool
}

// Apply scores one answer. All arithmetic is integer: XP has no upper
// bound and never decreases, HP is clamped to [0, max_hp].
func Apply(st PlayerStats, s *pack.Scenario, chosen int, cfg pack.ScoringConfig, themeKey string, themeOrder []string) (PlayerStats, Outcome) {
	oldTitle := TitleFor(st.XP, cfg.Titles, themeKey, themeOrder)

	out := Outcome{Correct: chosen == s.CorrectIndex}
	if out.Correct {
		st.XP += s.XPReward
		out.XPAwarded = s.XPReward
		if cfg.RegenPerCorrect > 0 && st.HP < cfg.MaxHP {
			heal := cfg.RegenPerCorrect
			if st.HP+heal > cfg.MaxHP {
				heal = cfg.MaxHP - st.HP
			}
			st.HP += heal
			out.HPHealed = heal
		}
	} else {
		loss := s.HPPenalty
		if loss > st.HP {
			loss = st.HP
		}
		st.HP -= loss
		out.HPLost = loss
	}

	out.NewTitle = TitleFor(st.XP, cfg.Titles, themeKey, themeOrder)
	out.TitleChanged = out.NewTitle != oldTitle
	out.Defeated = st.HP == 0
	return st, out
}

// TitleFor returns the label of the highest title rung whose threshold
// does not exceed xp, looked up for the active theme. A rung without a
// label for the active theme falls back to the first declared theme's
// label, then to any label on the rung. Must not panic on inconsistent
// packs.
func TitleFor(xp int, titles []pack.TitleRung, themeKey string, themeOrder []string) string {
	var best *pack.TitleRung
	for i := range titles {
		if titles[i].Threshold <= xp {
			if best == nil || titles[i].Threshold > best.Threshold {
				best = &titles[i]
			}
		}
	}
	if best == nil {
		return "Novice"
	}
	if label, ok := best.Labels[themeKey]; ok && label != "" {
		return label
	}
	for _, key := range themeOrder {
		if label, ok := best.Labels[key]; ok && label != "" {
			return label
		}
	}
	for _, label := range best.Labels {
		if label != "" {
			return label
		}
	}
	return "Novice"
}

// Rating maps an accuracy percentage (0-100) to a performance label.
func Rating(accuracy float64) string {
	switch {
	case accuracy >= 90:
		return "Exemplary"
	case accuracy >= 80:
		return "Proficient"
	case accuracy >= 70:
		return "Competent"
	case accuracy >= 60:
		return "Developing"
	default:
		return "Needs Improvement"
	}
}
