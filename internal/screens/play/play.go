package play

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certquest/internal/pack"
	"github.com/abhisek/certquest/internal/router"
	"github.com/abhisek/certquest/internal/screen"
	"github.com/abhisek/certquest/internal/screens/summary"
	"github.com/abhisek/certquest/internal/session"
	"github.com/abhisek/certquest/internal/themes"
	"github.com/abhisek/certquest/internal/ui/components"
	"github.com/abhisek/certquest/internal/ui/layout"
	"github.com/abhisek/certquest/internal/ui/theme"
)

type mode int

const (
	modeTheme mode = iota
	modeDomain
	modeIntro
	modeScenario
	modeOutcome
	modeDomainDone
	modeHelp
	modeStatus
	modeQuitConfirm
)

// themeChosenMsg is emitted when a theme is picked from the theme menu.
type themeChosenMsg struct {
	key string
}

// domainChosenMsg is emitted when a domain is picked from the domain menu.
type domainChosenMsg struct {
	id int
}

// PlayScreen runs one session over a certification pack. It translates
// keystrokes into session input events and session render events into
// views; all game rules live in the session package.
type PlayScreen struct {
	sess *session.Session
	pack *pack.CertificationPack

	mode     mode
	prevMode mode

	themeMenu  components.Menu
	domainMenu components.Menu

	intro      session.ShowIntro
	scenario   session.ShowScenario
	choices    components.ChoiceList
	outcome    session.ShowOutcome
	domainDone session.DomainCompleted
	help       session.ShowHelp
	status     session.ShowStatus
	notice     string

	pending []session.Event
}

var _ screen.Screen = (*PlayScreen)(nil)

// New creates a play screen and starts a fresh session.
func New(p *pack.CertificationPack, playerName string) *PlayScreen {
	s := &PlayScreen{
		sess: session.New(p, playerName),
		pack: p,
	}
	if s.sess.Phase() == session.PhaseSelectingTheme {
		s.mode = modeTheme
		s.themeMenu = buildThemeMenu(p)
	} else {
		s.mode = modeDomain
		s.domainMenu = s.buildDomainMenu()
	}
	return s
}

func buildThemeMenu(p *pack.CertificationPack) components.Menu {
	keys := themes.Available(p)
	items := make([]components.MenuItem, 0, len(keys))
	for _, key := range keys {
		key := key
		def := themes.Definition(p, key)
		items = append(items, components.MenuItem{
			Label:       def.DisplayName,
			Description: def.Description,
			Action: func() tea.Cmd {
				return func() tea.Msg { return themeChosenMsg{key: key} }
			},
		})
	}
	return components.NewMenu(items)
}

func (s *PlayScreen) buildDomainMenu() components.Menu {
	choices := s.sess.SelectableDomains()
	items := make([]components.MenuItem, 0, len(choices))
	for _, d := range choices {
		d := d
		items = append(items, components.MenuItem{
			Label:       fmt.Sprintf("Domain %d: %s", d.ID, d.Name),
			Description: fmt.Sprintf("%d of %d scenarios remaining", d.Remaining, d.Total),
			Action: func() tea.Cmd {
				return func() tea.Msg { return domainChosenMsg{id: d.ID} }
			},
		})
	}
	return components.NewMenu(items)
}

func (s *PlayScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case themeChosenMsg:
		if err := s.sess.SelectTheme(msg.key); err == nil {
			s.domainMenu = s.buildDomainMenu()
			s.mode = modeDomain
		}
		return s, nil

	case domainChosenMsg:
		events, err := s.sess.SelectDomain(msg.id)
		if err != nil {
			return s, nil
		}
		return s, s.advance(events)

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	switch s.mode {
	case modeHelp, modeStatus:
		s.mode = s.prevMode
		return s, nil

	case modeQuitConfirm:
		switch key {
		case "y", "enter":
			events, err := s.sess.Apply(session.Quit{})
			if err != nil {
				// Quitting before a theme is chosen just leaves.
				return s, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return s, s.advance(events)
		default:
			s.mode = s.prevMode
			return s, nil
		}
	}

	// Global keys for the active modes.
	switch key {
	case "q", "esc":
		if s.mode == modeTheme {
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		}
		s.prevMode = s.mode
		s.mode = modeQuitConfirm
		return s, nil
	case "h", "?":
		if s.mode == modeTheme {
			break
		}
		if events, err := s.sess.Apply(session.Help{}); err == nil {
			if help, ok := events[0].(session.ShowHelp); ok {
				s.help = help
				s.prevMode = s.mode
				s.mode = modeHelp
			}
		}
		return s, nil
	case "s":
		if s.mode == modeTheme {
			break
		}
		if events, err := s.sess.Apply(session.Status{}); err == nil {
			if status, ok := events[0].(session.ShowStatus); ok {
				s.status = status
				s.prevMode = s.mode
				s.mode = modeStatus
			}
		}
		return s, nil
	}

	switch s.mode {
	case modeTheme:
		var cmd tea.Cmd
		s.themeMenu, cmd = s.themeMenu.Update(msg)
		return s, cmd

	case modeDomain:
		var cmd tea.Cmd
		s.domainMenu, cmd = s.domainMenu.Update(msg)
		return s, cmd

	case modeIntro:
		if key == "enter" || key == "space" {
			return s, s.step()
		}
		return s, nil

	case modeScenario:
		if key == "t" {
			events, err := s.sess.Apply(session.SwitchTheme{})
			if err != nil {
				return s, nil
			}
			return s, s.advance(events)
		}
		var submitted bool
		s.choices, submitted = s.choices.Update(msg)
		if !submitted {
			return s, nil
		}
		events, err := s.sess.Apply(session.ChoiceSelected{N: s.choices.Chosen + 1})
		if err != nil {
			s.choices.Submitted = false
			s.choices.Chosen = -1
			return s, nil
		}
		return s, s.advance(events)

	case modeOutcome, modeDomainDone:
		if key == "enter" || key == "space" {
			return s, s.step()
		}
		return s, nil
	}

	return s, nil
}

// advance queues fresh session events and consumes the first one.
func (s *PlayScreen) advance(events []session.Event) tea.Cmd {
	s.pending = append(s.pending, events...)
	return s.step()
}

// step consumes the next pending session event and updates the view
// state. A session emitting nothing more falls back to domain selection.
func (s *PlayScreen) step() tea.Cmd {
	if len(s.pending) == 0 {
		s.domainMenu = s.buildDomainMenu()
		s.mode = modeDomain
		return nil
	}

	ev := s.pending[0]
	s.pending = s.pending[1:]

	switch ev := ev.(type) {
	case session.ShowIntro:
		s.intro = ev
		s.mode = modeIntro

	case session.ShowScenario:
		s.scenario = ev
		s.choices = components.NewChoiceList(ev.Content.Choices)
		s.mode = modeScenario

	case session.ShowOutcome:
		s.outcome = ev
		s.notice = ""
		if ev.Outcome.Correct {
			s.choices.Reveal(s.choices.Chosen)
		} else {
			s.choices.Reveal(ev.CorrectChoice - 1)
		}
		s.mode = modeOutcome

	case session.DomainCompleted:
		s.domainDone = ev
		s.mode = modeDomainDone

	case session.ThemeSwitched:
		s.notice = "Theme switched to " + ev.DisplayName
		return s.step()

	case session.ShowSummary:
		sum := ev.Summary
		return func() tea.Msg {
			return router.ReplaceScreenMsg{Screen: summary.New(sum)}
		}
	}

	return nil
}

func (s *PlayScreen) View(width, height int) string {
	switch s.mode {
	case modeTheme:
		return s.viewThemeMenu(width, height)
	case modeDomain:
		return s.viewDomainMenu(width, height)
	case modeIntro:
		return s.viewIntro(width, height)
	case modeScenario, modeOutcome:
		return s.viewScenario(width, height)
	case modeDomainDone:
		return s.viewDomainDone(width, height)
	case modeHelp:
		return s.viewHelp(width, height)
	case modeStatus:
		return s.viewStatus(width, height)
	case modeQuitConfirm:
		return s.viewQuitConfirm(width, height)
	}
	return ""
}

func (s *PlayScreen) viewThemeMenu(width, height int) string {
	content := theme.Title.Width(width).Render("CHOOSE YOUR REALITY") + "\n\n" +
		theme.Subtitle.Width(width).Render("The same trial, told in different tongues.") + "\n\n" +
		lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s.themeMenu.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *PlayScreen) viewDomainMenu(width, height int) string {
	player := s.sess.Player()
	statsLine := fmt.Sprintf("%s the %s   XP %d   HP %d/%d",
		player.Name, player.Title, player.XP, player.HP, player.MaxHP)

	content := theme.Title.Width(width).Render("CHOOSE YOUR PATH") + "\n\n" +
		theme.Subtitle.Width(width).Render(statsLine) + "\n\n" +
		lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s.domainMenu.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (s *PlayScreen) viewIntro(width, height int) string {
	def := themes.Definition(s.pack, s.sess.Player().ThemeKey)

	var body strings.Builder
	title := s.intro.Header.Title
	if title == "" {
		title = s.intro.DomainName
	}
	body.WriteString(theme.Title.Width(width - 12).Render(title))
	if s.intro.Header.Subtitle != "" {
		body.WriteString("\n" + theme.Subtitle.Width(width-12).Render(s.intro.Header.Subtitle))
	}
	if s.intro.HasIntro {
		narrator := s.intro.Intro.Narrator
		if narrator == "" {
			narrator = def.Narrator
		}
		body.WriteString("\n\n" + layout.RenderNarrative(s.intro.Intro.Introduction, narrator, width-12))
	}
	body.WriteString("\n\n" + theme.Hint.Render("Press Enter to begin..."))

	card := theme.Card.Width(width - 8).Render(body.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PlayScreen) viewScenario(width, height int) string {
	player := s.sess.Player()
	cw := width - 8

	var b strings.Builder

	progress := fmt.Sprintf("Scenario %d of %d", s.scenario.Position, s.scenario.Total)
	hpBar := components.NewStatBar("HP", player.HP, player.MaxHP, cw/2).View()
	statLine := theme.Hint.Render(progress) + "   " +
		theme.Body.Render(fmt.Sprintf("XP %d", player.XP)) + "\n" + hpBar
	b.WriteString(statLine + "\n\n")

	if s.notice != "" {
		b.WriteString(theme.Hint.Render(s.notice) + "\n\n")
	}

	b.WriteString(theme.Title.Render(s.scenario.Content.Title) + "\n\n")
	b.WriteString(theme.Narrative.Width(cw).Render(s.scenario.Content.Narrative) + "\n\n")
	b.WriteString(s.choices.View())

	if s.mode == modeOutcome {
		b.WriteString("\n" + s.renderOutcome(cw))
	}

	card := theme.Card.Width(width - 4).Render(b.String())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PlayScreen) renderOutcome(width int) string {
	var b strings.Builder
	out := s.outcome.Outcome

	if out.Correct {
		b.WriteString(theme.Correct.Render("✓ CORRECT") +
			theme.Body.Render(fmt.Sprintf("  +%d XP", out.XPAwarded)))
		if out.HPHealed > 0 {
			b.WriteString(theme.Correct.Render(fmt.Sprintf("  +%d HP", out.HPHealed)))
		}
	} else {
		b.WriteString(theme.Wrong.Render("✗ WRONG") +
			theme.Body.Render(fmt.Sprintf("  -%d HP", out.HPLost)))
	}
	b.WriteString("\n\n" + theme.Body.Width(width).Render(s.outcome.ResponseText))

	if !out.Correct {
		b.WriteString("\n\n" + theme.Hint.Render(fmt.Sprintf("The answer was [%d] %s",
			s.outcome.CorrectChoice, s.outcome.CorrectText)))
		if s.outcome.Reference != "" {
			b.WriteString("\n" + theme.Hint.Render("Study: "+s.outcome.Reference))
		}
	}
	if out.TitleChanged {
		b.WriteString("\n\n" + theme.Selected.Render("You are now: "+out.NewTitle))
	}

	b.WriteString("\n\n" + theme.Hint.Render("Press Enter to continue..."))
	return b.String()
}

func (s *PlayScreen) viewDomainDone(width, height int) string {
	player := s.sess.Player()
	content := theme.Title.Width(width - 12).Render("DOMAIN COMPLETE") + "\n\n" +
		theme.Body.Width(width-12).Align(lipgloss.Center).Render(
			fmt.Sprintf("You have cleared %s.", s.domainDone.DomainName)) + "\n\n" +
		theme.Subtitle.Width(width-12).Render(
			fmt.Sprintf("XP %d   HP %d/%d", player.XP, player.HP, player.MaxHP)) + "\n\n" +
		theme.Hint.Width(width-12).Align(lipgloss.Center).Render("Press Enter to continue...")
	card := theme.Card.Render(content)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PlayScreen) viewHelp(width, height int) string {
	lines := []string{
		theme.Title.Render("HELP"),
		"",
		theme.Body.Render(fmt.Sprintf("You are questing through %s.", s.help.PackName)),
		theme.Body.Render(fmt.Sprintf("%d domains stand between you and the title.", s.help.DomainCount)),
		"",
		theme.Body.Render("1-4      answer the scenario"),
		theme.Body.Render("↑↓ Enter highlight and submit"),
	}
	if s.help.ThemeCount > 1 {
		lines = append(lines, theme.Body.Render("t        switch narrative theme"))
	}
	lines = append(lines,
		theme.Body.Render("s        show your status"),
		theme.Body.Render("q        abandon the quest"),
		"",
		theme.Hint.Render("Press any key to return..."),
	)
	card := theme.Card.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PlayScreen) viewStatus(width, height int) string {
	p := s.status.State
	def := themes.Definition(s.pack, p.ThemeKey)
	lines := []string{
		theme.Title.Render("STATUS"),
		"",
		theme.Body.Render(fmt.Sprintf("%s %s the %s", def.PlayerTerm, p.Name, p.Title)),
		"",
		components.NewStatBar("HP", p.HP, p.MaxHP, 40).View(),
		theme.Body.Render(fmt.Sprintf("XP        %d", p.XP)),
		theme.Body.Render(fmt.Sprintf("Correct   %d", p.Correct)),
		theme.Body.Render(fmt.Sprintf("Wrong     %d", p.Wrong)),
		theme.Body.Render(fmt.Sprintf("Accuracy  %.1f%%", p.Accuracy())),
		"",
		theme.Hint.Render("Press any key to return..."),
	}
	card := theme.Card.Render(strings.Join(lines, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PlayScreen) viewQuitConfirm(width, height int) string {
	card := theme.Card.Render(
		theme.Title.Render("ABANDON QUEST?") + "\n\n" +
			theme.Body.Render("Your progress this run will be lost.") + "\n\n" +
			theme.Wrong.Render("[y]") + theme.Body.Render(" yes   ") +
			theme.Correct.Render("[n]") + theme.Body.Render(" keep going"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, card)
}

func (s *PlayScreen) Title() string {
	return "Quest"
}

// PackName implements screen.PackNameProvider.
func (s *PlayScreen) PackName() string {
	return s.pack.Name + "  "
}

// KeyHints implements screen.KeyHintProvider.
func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch s.mode {
	case modeScenario:
		hints := []layout.KeyHint{
			{Key: "1-4", Description: "Answer"},
			{Key: "↑↓ Enter", Description: "Select"},
		}
		if s.pack.Themes.Len() > 1 {
			hints = append(hints, layout.KeyHint{Key: "t", Description: "Theme"})
		}
		return append(hints,
			layout.KeyHint{Key: "s", Description: "Status"},
			layout.KeyHint{Key: "q", Description: "Quit"},
		)
	case modeOutcome, modeIntro, modeDomainDone:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
			{Key: "q", Description: "Quit"},
		}
	case modeHelp, modeStatus:
		return []layout.KeyHint{
			{Key: "Any key", Description: "Back"},
		}
	case modeQuitConfirm:
		return []layout.KeyHint{
			{Key: "y", Description: "Abandon"},
			{Key: "n", Description: "Stay"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "h", Description: "Help"},
		{Key: "q", Description: "Quit"},
	}
}
