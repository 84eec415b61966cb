package home

import (
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/certquest/internal/pack"
	"github.com/abhisek/certquest/internal/router"
	"github.com/abhisek/certquest/internal/screen"
	"github.com/abhisek/certquest/internal/screens/play"
	"github.com/abhisek/certquest/internal/ui/components"
	"github.com/abhisek/certquest/internal/ui/layout"
	"github.com/abhisek/certquest/internal/ui/theme"
)

const banner = `
   ██████╗███████╗██████╗ ████████╗ ██████╗ ██╗   ██╗███████╗███████╗████████╗
  ██╔════╝██╔════╝██╔══██╗╚══██╔══╝██╔═══██╗██║   ██║██╔════╝██╔════╝╚══██╔══╝
  ██║     █████╗  ██████╔╝   ██║   ██║   ██║██║   ██║█████╗  ███████╗   ██║
  ██║     ██╔══╝  ██╔══██╗   ██║   ██║▄▄ ██║██║   ██║██╔══╝  ╚════██║   ██║
  ╚██████╗███████╗██║  ██║   ██║   ╚██████╔╝╚██████╔╝███████╗███████║   ██║
   ╚═════╝╚══════╝╚═╝  ╚═╝   ╚═╝    ╚══▀▀═╝  ╚═════╝ ╚══════╝╚══════╝   ╚═╝`

type stage int

const (
	stagePickPack stage = iota
	stageEnterName
)

// packChosenMsg is emitted when a certification pack is selected.
type packChosenMsg struct {
	id string
}

// HomeScreen is the entry screen: pick a certification, name your hero.
type HomeScreen struct {
	packs    map[string]*pack.CertificationPack
	menu     components.Menu
	stage    stage
	selected *pack.CertificationPack
	name     components.TextInput
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates the home screen over the loaded pack registry.
func New(packs map[string]*pack.CertificationPack) *HomeScreen {
	ids := make([]string, 0, len(packs))
	for id := range packs {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	items := make([]components.MenuItem, 0, len(ids)+1)
	for _, id := range ids {
		p := packs[id]
		id := id
		items = append(items, components.MenuItem{
			Label: p.Name,
			Description: fmt.Sprintf("%s · %d domains · %d themes",
				p.FullName, len(p.Domains), p.Themes.Len()),
			Action: func() tea.Cmd {
				return func() tea.Msg { return packChosenMsg{id: id} }
			},
		})
	}
	items = append(items, components.MenuItem{
		Label: "EXIT",
		Action: func() tea.Cmd {
			return tea.Quit
		},
	})

	return &HomeScreen{
		packs: packs,
		menu:  components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case packChosenMsg:
		h.selected = h.packs[msg.id]
		h.stage = stageEnterName
		h.name = components.NewTextInput("Your name", 24)
		return h, h.name.Init()

	case tea.KeyMsg:
		if h.stage == stageEnterName {
			switch msg.String() {
			case "esc":
				h.stage = stagePickPack
				h.selected = nil
				return h, nil
			case "enter":
				playerName := h.name.Value()
				if playerName == "" {
					playerName = "Adventurer"
				}
				selected := h.selected
				return h, func() tea.Msg {
					return router.PushScreenMsg{Screen: play.New(selected, playerName)}
				}
			}
		}
	}

	var cmd tea.Cmd
	if h.stage == stageEnterName {
		h.name, cmd = h.name.Update(msg)
	} else {
		h.menu, cmd = h.menu.Update(msg)
	}
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	var sections []string

	sections = append(sections, theme.Title.Width(width).Render(banner))
	sections = append(sections, theme.Subtitle.Width(width).Render(
		"Narrative certification training"))

	switch h.stage {
	case stagePickPack:
		if len(h.packs) == 0 {
			sections = append(sections, theme.Hint.Width(width).Render(
				"No certification packs found. Run `certquest fetch` to install some."))
		} else {
			sections = append(sections, theme.Body.Width(width).Align(lipgloss.Center).Render(
				"Choose your certification:"))
			menu := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(h.menu.View())
			sections = append(sections, menu)
		}

	case stageEnterName:
		prompt := theme.Body.Render("Entering: ") +
			theme.Selected.Render(h.selected.Name)
		box := theme.Card.Render(prompt + "\n\n" +
			theme.Body.Render("What shall we call you?") + "\n\n" +
			h.name.View())
		sections = append(sections, lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(box))
	}

	content := strings.Join(sections, "\n\n")
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// KeyHints implements screen.KeyHintProvider.
func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if h.stage == stageEnterName {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Begin"},
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}
