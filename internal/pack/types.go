package pack

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// CertificationPack is a fully loaded, validated certification content bundle.
// Packs are immutable after load and safe to share across sessions.
type CertificationPack struct {
	ID           string
	Name         string
	FullName     string
	Organization string
	Domains      []Domain
	Themes       ThemeSet
	Scoring      ScoringConfig

	// Scenarios maps domain id to the scenarios loaded from that domain's
	// file, in file order. Order is significant for progress tracking.
	Scenarios map[int][]Scenario

	// Intros holds optional per-domain introductions (nil if the pack
	// ships no intros.yaml).
	Intros map[int]Intro
}

// Domain is a named topic grouping within a pack.
type Domain struct {
	ID        int                     `yaml:"id"`
	Name      string                  `yaml:"name"`
	ShortName string                  `yaml:"short_name"`
	Themes    map[string]DomainHeader `yaml:"themes"`
}

// DomainHeader is the themed banner content for a domain.
type DomainHeader struct {
	Title    string `yaml:"title"`
	Subtitle string `yaml:"subtitle"`
}

// Scenario is a single question unit with per-theme content variants.
type Scenario struct {
	ID              string                  `yaml:"id"`
	Domain          int                     `yaml:"domain"`
	CorrectIndex    int                     `yaml:"correct_index"`
	XPReward        int                     `yaml:"xp_reward"`
	HPPenalty       int                     `yaml:"hp_penalty"`
	FailureText     string                  `yaml:"failure_text"`
	DomainReference string                  `yaml:"domain_reference"`
	Themes          map[string]ThemeContent `yaml:"themes"`
}

// ChoiceCount is the fixed number of choices every scenario presents.
const ChoiceCount = 4

// ThemeContent is a scenario's narrative content in one theme.
type ThemeContent struct {
	Title        string         `yaml:"title"`
	Narrative    string         `yaml:"narrative"`
	Choices      []string       `yaml:"choices"`
	SuccessText  string         `yaml:"success_text"`
	FailureTexts map[int]string `yaml:"failure_texts"`
}

// FailureTextFor returns the failure text for a wrong 0-based choice,
// falling back to the scenario's generic failure text.
func (s *Scenario) FailureTextFor(themeKey string, chosen int) string {
	if tc, ok := s.Themes[themeKey]; ok {
		if txt, ok := tc.FailureTexts[chosen]; ok {
			return txt
		}
	}
	return s.FailureText
}

// ThemeDefinition describes one presentation skin declared by a pack.
type ThemeDefinition struct {
	DisplayName    string `yaml:"display_name"`
	ShortName      string `yaml:"short_name"`
	Description    string `yaml:"description"`
	GameTitle      string `yaml:"game_title"`
	PlayerTerm     string `yaml:"player_term"`
	Narrator       string `yaml:"narrator"`
	VictoryMessage string `yaml:"victory_message"`
}

// ThemeSet holds a pack's theme definitions in declaration order.
// YAML mappings lose ordering when decoded into a map, so the set keeps
// the key order from the document alongside the definitions.
type ThemeSet struct {
	keys []string
	defs map[string]ThemeDefinition
}

// NewThemeSet builds a set from definitions in the given key order.
// Keys without a definition are skipped.
func NewThemeSet(keys []string, defs map[string]ThemeDefinition) ThemeSet {
	ts := ThemeSet{defs: make(map[string]ThemeDefinition, len(keys))}
	for _, key := range keys {
		def, ok := defs[key]
		if !ok {
			continue
		}
		if _, dup := ts.defs[key]; !dup {
			ts.keys = append(ts.keys, key)
		}
		ts.defs[key] = def
	}
	return ts
}

// UnmarshalYAML decodes a themes mapping, preserving key order.
func (ts *ThemeSet) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("presentation.themes: expected mapping, got %s", node.Tag)
	}
	ts.defs = make(map[string]ThemeDefinition, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return fmt.Errorf("presentation.themes: %w", err)
		}
		var def ThemeDefinition
		if err := node.Content[i+1].Decode(&def); err != nil {
			return fmt.Errorf("presentation.themes[%s]: %w", key, err)
		}
		if _, dup := ts.defs[key]; !dup {
			ts.keys = append(ts.keys, key)
		}
		ts.defs[key] = def
	}
	return nil
}

// Keys returns the theme keys in declaration order.
func (ts ThemeSet) Keys() []string {
	out := make([]string, len(ts.keys))
	copy(out, ts.keys)
	return out
}

// Get returns the definition for a theme key.
func (ts ThemeSet) Get(key string) (ThemeDefinition, bool) {
	d, ok := ts.defs[key]
	return d, ok
}

// Has reports whether the set declares the given key.
func (ts ThemeSet) Has(key string) bool {
	_, ok := ts.defs[key]
	return ok
}

// Len returns the number of declared themes.
func (ts ThemeSet) Len() int {
	return len(ts.keys)
}

// ScoringConfig holds a pack's XP/HP and title ladder configuration.
type ScoringConfig struct {
	StartingHP         int         `yaml:"starting_hp"`
	MaxHP              int         `yaml:"max_hp"`
	RegenPerCorrect    int         `yaml:"regen_per_correct"`
	ScenariosPerDomain int         `yaml:"scenarios_per_domain"`
	Titles             []TitleRung `yaml:"titles"`
	Performance        Performance `yaml:"performance"`
}

// Performance holds pass/fail thresholds for the final summary.
type Performance struct {
	// Passing is the accuracy percentage required to pass (0-100).
	Passing float64 `yaml:"passing"`
}

// TitleRung is one step of the title ladder: an XP threshold plus a label
// per theme key. In YAML the labels sit inline next to the threshold:
//
//	- threshold: 200
//	  fantasy: Apprentice
//	  corporate: Junior Analyst
type TitleRung struct {
	Threshold int
	Labels    map[string]string
}

// UnmarshalYAML decodes a rung, treating every key other than threshold
// as a theme label.
func (t *TitleRung) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("scoring.titles: expected mapping, got %s", node.Tag)
	}
	t.Labels = make(map[string]string)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var key string
		if err := node.Content[i].Decode(&key); err != nil {
			return err
		}
		if key == "threshold" {
			if err := node.Content[i+1].Decode(&t.Threshold); err != nil {
				return fmt.Errorf("scoring.titles threshold: %w", err)
			}
			continue
		}
		var label string
		if err := node.Content[i+1].Decode(&label); err != nil {
			return fmt.Errorf("scoring.titles[%s]: %w", key, err)
		}
		t.Labels[key] = label
	}
	return nil
}

// Intro is optional educational content shown when entering a domain.
type Intro struct {
	// PerTheme maps theme key to themed intro text; Default applies when
	// the active theme has no entry.
	PerTheme map[string]IntroText
	Default  IntroText
}

// IntroText is a single introduction narrative with its narrator label.
type IntroText struct {
	Introduction string `yaml:"introduction"`
	Narrator     string `yaml:"narrator"`
}

// DomainByID returns the domain with the given id.
func (p *CertificationPack) DomainByID(id int) (*Domain, bool) {
	for i := range p.Domains {
		if p.Domains[i].ID == id {
			return &p.Domains[i], true
		}
	}
	return nil, false
}

// DomainName returns a domain's name, or a generic placeholder for
// unknown ids.
func (p *CertificationPack) DomainName(id int) string {
	if d, ok := p.DomainByID(id); ok {
		return d.Name
	}
	return fmt.Sprintf("Domain %d", id)
}

// DomainShortName returns a domain's short name, falling back to its name.
func (p *CertificationPack) DomainShortName(id int) string {
	if d, ok := p.DomainByID(id); ok {
		if d.ShortName != "" {
			return d.ShortName
		}
		return d.Name
	}
	return fmt.Sprintf("Domain %d", id)
}
