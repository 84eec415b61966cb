package components

import (
	"fmt"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/certquest/internal/ui/theme"
)

// ChoiceList presents a scenario's numbered choices. After submission it
// reveals the correct choice and highlights a wrong pick.
type ChoiceList struct {
	Choices   []string
	Selected  int
	Submitted bool
	Chosen    int // 0-based, -1 until submitted
	Correct   int // 0-based correct index, revealed after submission
}

// NewChoiceList creates a choice list over a scenario's options.
func NewChoiceList(choices []string) ChoiceList {
	return ChoiceList{
		Choices: choices,
		Chosen:  -1,
		Correct: -1,
	}
}

// Update handles navigation and selection. Number keys jump directly to
// a choice; enter submits the highlighted one.
func (c ChoiceList) Update(msg tea.Msg) (ChoiceList, bool) {
	if c.Submitted {
		return c, false
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, false
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if c.Selected > 0 {
			c.Selected--
		}
	case "down", "j":
		if c.Selected < len(c.Choices)-1 {
			c.Selected++
		}
	case "1", "2", "3", "4":
		n := int(key[0] - '1')
		if n < len(c.Choices) {
			c.Selected = n
			c.Submitted = true
			c.Chosen = n
			return c, true
		}
	case "enter":
		c.Submitted = true
		c.Chosen = c.Selected
		return c, true
	}

	return c, false
}

// Reveal marks the correct choice for post-submission rendering.
func (c *ChoiceList) Reveal(correct int) {
	c.Correct = correct
}

// View renders the numbered choices.
func (c ChoiceList) View() string {
	var s string
	for i, opt := range c.Choices {
		prefix := "  "
		if i == c.Selected && !c.Submitted {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s[%d]  %s", prefix, i+1, opt)

		switch {
		case c.Submitted && i == c.Correct:
			s += theme.Correct.Render(line) + "\n"
		case c.Submitted && i == c.Chosen:
			s += theme.Wrong.Render(line) + "\n"
		case c.Submitted:
			s += theme.Disabled.Render(line) + "\n"
		case i == c.Selected:
			s += theme.Selected.Render(line) + "\n"
		default:
			s += theme.Unselected.Render(line) + "\n"
		}
	}
	return s
}
