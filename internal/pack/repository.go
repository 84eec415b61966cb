package pack

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the per-pack entry point file.
const ConfigFileName = "config.yaml"

// deprecatedKeys are config keys from older pack layouts. They are flagged
// as warnings to aid pack authors, never as load failures.
var deprecatedKeys = []string{"question_file", "theme_file", "settings", "metadata"}

// Repository discovers and loads certification packs from a content root.
// A pack is a directory under the root containing a config.yaml.
type Repository struct {
	root string
}

// NewRepository creates a repository over the given content root.
func NewRepository(root string) *Repository {
	return &Repository{root: root}
}

// Root returns the content root path.
func (r *Repository) Root() string {
	return r.root
}

// Discover returns the ids of all candidate packs, sorted. A missing
// content root yields an empty result, not an error.
func (r *Repository) Discover() ([]string, error) {
	entries, err := os.ReadDir(r.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read content root: %w", err)
	}

	var ids []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		cfg := filepath.Join(r.root, e.Name(), ConfigFileName)
		if _, err := os.Stat(cfg); err == nil {
			ids = append(ids, e.Name())
		}
	}
	sort.Strings(ids)
	return ids, nil
}

// Load parses and validates one pack. On any hard validation failure the
// pack is nil; the report always carries every error and warning found.
// Load never panics past its boundary for a malformed pack.
func (r *Repository) Load(id string) (*CertificationPack, *Report) {
	report := &Report{PackID: id}
	dir := filepath.Join(r.root, id)

	data, err := os.ReadFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		report.errorf(CodeUnreadable, "read %s: %v", ConfigFileName, err)
		return nil, report
	}

	// Untyped decode for section presence, deprecated keys, and the
	// structural schema pass.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		report.errorf(CodeUnreadable, "parse %s: %v", ConfigFileName, err)
		return nil, report
	}

	for _, key := range deprecatedKeys {
		if _, ok := doc[key]; ok {
			report.warnf(CodeDeprecatedKey, "top-level key %q is deprecated and ignored", key)
		}
	}

	if !checkSections(doc, report) {
		return nil, report
	}

	if err := validateConfigDocument(doc); err != nil {
		report.errorf(CodeSchemaViolation, "%s: %v", ConfigFileName, err)
		return nil, report
	}

	var cfg configFile
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		report.errorf(CodeUnreadable, "decode %s: %v", ConfigFileName, err)
		return nil, report
	}

	if !checkDomainCount(&cfg, report) {
		return nil, report
	}
	if !checkDomainIDs(&cfg, report) {
		return nil, report
	}
	if !checkThemeReferences(&cfg, report) {
		return nil, report
	}
	if !checkTitleLadder(&cfg, report) {
		return nil, report
	}

	scenarios, ok := r.loadScenarios(dir, &cfg, report)
	if !ok {
		return nil, report
	}
	if !checkScenarios(&cfg, scenarios, report) {
		return nil, report
	}

	p := &CertificationPack{
		ID:           cfg.Certification.ID,
		Name:         cfg.Certification.Name,
		FullName:     cfg.Certification.FullName,
		Organization: cfg.Certification.Organization,
		Domains:      cfg.Domains.List,
		Themes:       cfg.Presentation.Themes,
		Scoring:      cfg.Scoring.withDefaults(),
		Scenarios:    scenarios,
		Intros:       r.loadIntros(dir, report),
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, report
}

// LoadAll discovers and loads every pack. One malformed pack never
// prevents the others from loading; its report is still returned.
func (r *Repository) LoadAll() (map[string]*CertificationPack, map[string]*Report, error) {
	ids, err := r.Discover()
	if err != nil {
		return nil, nil, err
	}

	packs := make(map[string]*CertificationPack)
	reports := make(map[string]*Report, len(ids))
	for _, id := range ids {
		p, report := r.Load(id)
		reports[id] = report
		if p != nil {
			packs[id] = p
		}
	}
	return packs, reports, nil
}

// loadScenarios reads scenarios/domain_N.yaml for every declared domain.
func (r *Repository) loadScenarios(dir string, cfg *configFile, report *Report) (map[int][]Scenario, bool) {
	out := make(map[int][]Scenario, len(cfg.Domains.List))
	ok := true
	for _, d := range cfg.Domains.List {
		name := fmt.Sprintf("domain_%d.yaml", d.ID)
		path := filepath.Join(dir, "scenarios", name)
		data, err := os.ReadFile(path)
		if err != nil {
			report.errorf(CodeMissingScenarioFile, "scenarios/%s: %v", name, err)
			ok = false
			continue
		}
		var sf scenarioFile
		if err := yaml.Unmarshal(data, &sf); err != nil {
			report.errorf(CodeMissingScenarioFile, "scenarios/%s: parse: %v", name, err)
			ok = false
			continue
		}
		if len(sf.Scenarios) == 0 {
			report.errorf(CodeMissingScenarioFile, "scenarios/%s: no scenarios", name)
			ok = false
			continue
		}
		out[d.ID] = sf.Scenarios
	}
	return out, ok
}

// loadIntros reads the optional intros.yaml. Absence is fine; a malformed
// file is a warning and intros are dropped.
func (r *Repository) loadIntros(dir string, report *Report) map[int]Intro {
	data, err := os.ReadFile(filepath.Join(dir, "intros.yaml"))
	if err != nil {
		return nil
	}
	var raw map[int]introNode
	if err := yaml.Unmarshal(data, &raw); err != nil {
		report.warnf(CodeBadOptionalFile, "intros.yaml: parse: %v", err)
		return nil
	}
	intros := make(map[int]Intro, len(raw))
	for id, node := range raw {
		intros[id] = node.intro
	}
	return intros
}

// configFile is the typed shape of config.yaml.
type configFile struct {
	Certification struct {
		ID           string `yaml:"id"`
		Name         string `yaml:"name"`
		FullName     string `yaml:"full_name"`
		Organization string `yaml:"organization"`
	} `yaml:"certification"`
	Domains struct {
		Count int      `yaml:"count"`
		List  []Domain `yaml:"list"`
	} `yaml:"domains"`
	Presentation struct {
		Themes ThemeSet `yaml:"themes"`
	} `yaml:"presentation"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// scenarioFile is the typed shape of a scenarios/domain_N.yaml file.
type scenarioFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// introNode decodes one intros.yaml entry, which is either a bare
// {introduction, narrator} pair or a theme-keyed mapping of such pairs.
type introNode struct {
	intro Intro
}

func (n *introNode) UnmarshalYAML(node *yaml.Node) error {
	var probe map[string]yaml.Node
	if err := node.Decode(&probe); err != nil {
		return err
	}
	if _, bare := probe["introduction"]; bare {
		return node.Decode(&n.intro.Default)
	}
	n.intro.PerTheme = make(map[string]IntroText, len(probe))
	for key, child := range probe {
		var txt IntroText
		if err := child.Decode(&txt); err != nil {
			return fmt.Errorf("intro theme %q: %w", key, err)
		}
		n.intro.PerTheme[key] = txt
	}
	return nil
}

// withDefaults fills unset scoring knobs with the engine defaults.
func (sc ScoringConfig) withDefaults() ScoringConfig {
	if sc.StartingHP == 0 {
		sc.StartingHP = 100
	}
	if sc.MaxHP == 0 {
		sc.MaxHP = sc.StartingHP
	}
	if sc.Performance.Passing == 0 {
		sc.Performance.Passing = 70
	}
	return sc
}
