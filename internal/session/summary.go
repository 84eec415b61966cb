package session

import (
	"time"

	"github.com/abhisek/certquest/internal/scoring"
)

// Summary is the final report emitted when a session terminates, whatever
// the cause: natural completion, HP exhaustion, or explicit quit.
type Summary struct {
	SessionID      string
	PackID         string
	PackName       string
	PlayerName     string
	Outcome        OutcomeTag
	XP             int
	HP             int
	Title          string
	Correct        int
	Wrong          int
	Accuracy       float64 // percentage, 0-100
	Rating         string
	Passed         bool
	Domains        []DomainResult
	Duration       time.Duration
	VictoryMessage string
}

// DomainResult is one domain's line in the summary breakdown.
type DomainResult struct {
	DomainID  int
	ShortName string
	Correct   int
	Wrong     int
	Answered  int
	Accuracy  float64
}

// Summary builds the final summary from the current player state. Passing
// requires both natural completion and meeting the pack's passing
// accuracy threshold; defeat and quit never pass.
func (s *Session) Summary() *Summary {
	accuracy := s.player.Accuracy()

	sum := &Summary{
		SessionID:  s.id,
		PackID:     s.pack.ID,
		PackName:   s.pack.Name,
		PlayerName: s.player.Name,
		Outcome:    s.outcome,
		XP:         s.player.XP,
		HP:         s.player.HP,
		Title:      s.player.Title,
		Correct:    s.player.Correct,
		Wrong:      s.player.Wrong,
		Accuracy:   accuracy,
		Rating:     scoring.Rating(accuracy),
		Passed:     s.outcome == OutcomeCompleted && accuracy >= s.pack.Scoring.Performance.Passing,
		Duration:   time.Since(s.started),
	}
	if def, ok := s.pack.Themes.Get(s.player.ThemeKey); ok {
		sum.VictoryMessage = def.VictoryMessage
	}

	for _, d := range s.pack.Domains {
		prog := s.player.Progress[d.ID]
		answered := prog.Correct + prog.Wrong
		if answered == 0 {
			continue
		}
		sum.Domains = append(sum.Domains, DomainResult{
			DomainID:  d.ID,
			ShortName: s.pack.DomainShortName(d.ID),
			Correct:   prog.Correct,
			Wrong:     prog.Wrong,
			Answered:  answered,
			Accuracy:  float64(prog.Correct) / float64(answered) * 100,
		})
	}

	return sum
}
