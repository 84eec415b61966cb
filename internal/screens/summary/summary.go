package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certquest/internal/router"
	"github.com/abhisek/certquest/internal/screen"
	"github.com/abhisek/certquest/internal/session"
	"github.com/abhisek/certquest/internal/ui/layout"
	"github.com/abhisek/certquest/internal/ui/theme"
)

// SummaryScreen shows the final report after a session ends.
type SummaryScreen struct {
	sum *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)

// New creates a summary screen for a finished session.
func New(sum *session.Summary) *SummaryScreen {
	return &SummaryScreen{sum: sum}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "enter", "esc", "q":
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.sum
	cw := 56

	var b strings.Builder

	switch sum.Outcome {
	case session.OutcomeCompleted:
		if sum.Passed {
			b.WriteString(theme.Correct.Render("★ QUEST COMPLETE — CERTIFIED ★"))
			if sum.VictoryMessage != "" {
				b.WriteString("\n\n" + theme.Narrative.Width(cw).Render(sum.VictoryMessage))
			}
		} else {
			b.WriteString(theme.Title.Render("QUEST COMPLETE"))
			b.WriteString("\n\n" + theme.Body.Width(cw).Render(
				"You reached the end, but the examiners demand greater accuracy. Train and return."))
		}
	case session.OutcomeDefeated:
		b.WriteString(theme.Wrong.Render("DEFEATED"))
		b.WriteString("\n\n" + theme.Body.Width(cw).Render(
			"Your HP has run out. The quest ends here, but the knowledge remains."))
	case session.OutcomeQuit:
		b.WriteString(theme.Title.Render("QUEST ABANDONED"))
	}

	b.WriteString("\n\n" + theme.Subtitle.Render(strings.Repeat("─", cw)) + "\n\n")

	b.WriteString(theme.Body.Render(fmt.Sprintf("%-12s %s the %s", "Hero", sum.PlayerName, sum.Title)) + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%-12s %s", "Quest", sum.PackName)) + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%-12s %d", "XP", sum.XP)) + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%-12s %d", "HP left", sum.HP)) + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%-12s %d correct, %d wrong", "Answers", sum.Correct, sum.Wrong)) + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%-12s %.1f%% (%s)", "Accuracy", sum.Accuracy, sum.Rating)) + "\n")
	b.WriteString(theme.Body.Render(fmt.Sprintf("%-12s %s", "Time", sum.Duration.Round(time.Second))))

	if len(sum.Domains) > 0 {
		b.WriteString("\n\n" + theme.Subtitle.Render(strings.Repeat("─", cw)) + "\n\n")
		for _, d := range sum.Domains {
			line := fmt.Sprintf("%-8s %2d/%-2d  %.0f%%", d.ShortName, d.Correct, d.Answered, d.Accuracy)
			if d.Accuracy >= 70 {
				b.WriteString(theme.Correct.Render(line) + "\n")
			} else {
				b.WriteString(theme.Wrong.Render(line) + "\n")
			}
		}
	}

	b.WriteString("\n" + theme.Hint.Render("Press Enter to return to the hall..."))

	card := theme.Card.Width(cw + 6).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *SummaryScreen) Title() string {
	return "Summary"
}

// PackName implements screen.PackNameProvider.
func (s *SummaryScreen) PackName() string {
	return s.sum.PackName + "  "
}

// KeyHints implements screen.KeyHintProvider.
func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Return"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
