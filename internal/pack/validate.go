package pack

// Validation runs in stages matching the load pipeline: each stage
// accumulates every problem it can find, and the pipeline stops after the
// first stage that produced errors. Each check returns false when the
// stage failed.

var requiredSections = []string{"certification", "domains", "presentation", "scoring"}

// checkSections verifies the required top-level sections exist.
func checkSections(doc map[string]any, report *Report) bool {
	ok := true
	for _, section := range requiredSections {
		if _, present := doc[section]; !present {
			report.errorf(CodeMissingSection, "missing required section %q", section)
			ok = false
		}
	}
	return ok
}

// checkDomainCount verifies domains.count is at least 1 and matches the list.
func checkDomainCount(cfg *configFile, report *Report) bool {
	ok := true
	if cfg.Domains.Count < 1 {
		report.errorf(CodeDomainCountMismatch, "domains.count must be >= 1, got %d", cfg.Domains.Count)
		ok = false
	}
	if cfg.Domains.Count != len(cfg.Domains.List) {
		report.errorf(CodeDomainCountMismatch,
			"domains.count is %d but domains.list has %d entries",
			cfg.Domains.Count, len(cfg.Domains.List))
		ok = false
	}
	return ok
}

// checkDomainIDs verifies domain ids are unique. Gaps are allowed.
func checkDomainIDs(cfg *configFile, report *Report) bool {
	ok := true
	seen := make(map[int]bool, len(cfg.Domains.List))
	for _, d := range cfg.Domains.List {
		if d.ID < 1 {
			report.errorf(CodeDuplicateDomainID, "domain id must be >= 1, got %d", d.ID)
			ok = false
			continue
		}
		if seen[d.ID] {
			report.errorf(CodeDuplicateDomainID, "duplicate domain id %d", d.ID)
			ok = false
		}
		seen[d.ID] = true
	}
	return ok
}

// checkThemeReferences verifies presentation.themes is non-empty and that
// every domain carries content for exactly the declared theme keys.
func checkThemeReferences(cfg *configFile, report *Report) bool {
	themes := cfg.Presentation.Themes
	if themes.Len() == 0 {
		report.errorf(CodeUnknownThemeKey, "presentation.themes is empty")
		return false
	}

	ok := true
	for _, d := range cfg.Domains.List {
		for key := range d.Themes {
			if !themes.Has(key) {
				report.errorf(CodeUnknownThemeKey,
					"domain %d references undeclared theme %q", d.ID, key)
				ok = false
			}
		}
		for _, key := range themes.Keys() {
			if _, present := d.Themes[key]; !present {
				report.errorf(CodeUnknownThemeKey,
					"domain %d has no content for declared theme %q", d.ID, key)
				ok = false
			}
		}
	}
	return ok
}

// checkTitleLadder verifies scoring.titles is a usable ladder: non-empty,
// strictly increasing thresholds, a threshold-0 base rung, and a label for
// every declared theme on every rung.
func checkTitleLadder(cfg *configFile, report *Report) bool {
	titles := cfg.Scoring.Titles
	if len(titles) == 0 {
		report.errorf(CodeInvalidTitleLadder, "scoring.titles is empty")
		return false
	}

	ok := true
	if titles[0].Threshold != 0 {
		report.errorf(CodeInvalidTitleLadder,
			"first title threshold must be 0, got %d", titles[0].Threshold)
		ok = false
	}
	for i := 1; i < len(titles); i++ {
		if titles[i].Threshold <= titles[i-1].Threshold {
			report.errorf(CodeInvalidTitleLadder,
				"title thresholds must be strictly increasing: %d after %d",
				titles[i].Threshold, titles[i-1].Threshold)
			ok = false
		}
	}
	for _, rung := range titles {
		for _, key := range cfg.Presentation.Themes.Keys() {
			if rung.Labels[key] == "" {
				report.errorf(CodeInvalidTitleLadder,
					"title threshold %d has no label for theme %q", rung.Threshold, key)
				ok = false
			}
		}
	}
	return ok
}

// checkScenarios verifies every loaded scenario against the content
// invariants: unique id within its domain, a valid correct_index, full
// theme coverage with exactly four choices, and resolvable failure text
// for every wrong choice.
func checkScenarios(cfg *configFile, scenarios map[int][]Scenario, report *Report) bool {
	ok := true
	themeKeys := cfg.Presentation.Themes.Keys()

	for _, d := range cfg.Domains.List {
		seen := make(map[string]bool)
		for _, s := range scenarios[d.ID] {
			if s.ID == "" {
				report.errorf(CodeInvalidScenario, "domain %d: scenario without id", d.ID)
				ok = false
				continue
			}
			if seen[s.ID] {
				report.errorf(CodeInvalidScenario,
					"domain %d: duplicate scenario id %q", d.ID, s.ID)
				ok = false
			}
			seen[s.ID] = true

			if s.Domain != 0 && s.Domain != d.ID {
				report.errorf(CodeInvalidScenario,
					"scenario %q declares domain %d but was loaded from domain %d",
					s.ID, s.Domain, d.ID)
				ok = false
			}
			if s.CorrectIndex < 0 || s.CorrectIndex >= ChoiceCount {
				report.errorf(CodeInvalidScenario,
					"scenario %q: correct_index %d out of range [0,%d]",
					s.ID, s.CorrectIndex, ChoiceCount-1)
				ok = false
			}
			if s.XPReward < 0 {
				report.errorf(CodeInvalidScenario,
					"scenario %q: negative xp_reward %d", s.ID, s.XPReward)
				ok = false
			}
			if s.HPPenalty < 0 {
				report.errorf(CodeInvalidScenario,
					"scenario %q: negative hp_penalty %d", s.ID, s.HPPenalty)
				ok = false
			}

			for _, key := range themeKeys {
				tc, present := s.Themes[key]
				if !present {
					report.errorf(CodeInvalidScenario,
						"scenario %q: missing content for declared theme %q", s.ID, key)
					ok = false
					continue
				}
				if len(tc.Choices) != ChoiceCount {
					report.errorf(CodeInvalidScenario,
						"scenario %q theme %q: expected %d choices, got %d",
						s.ID, key, ChoiceCount, len(tc.Choices))
					ok = false
				}
				if !failureTextsResolvable(&s, tc) {
					report.errorf(CodeInvalidScenario,
						"scenario %q theme %q: failure text not resolvable for every wrong choice",
						s.ID, key)
					ok = false
				}
			}
			for key := range s.Themes {
				if !cfg.Presentation.Themes.Has(key) {
					report.errorf(CodeUnknownThemeKey,
						"scenario %q references undeclared theme %q", s.ID, key)
					ok = false
				}
			}
		}
	}
	return ok
}

// failureTextsResolvable reports whether every non-correct choice index
// resolves to some failure text, either an explicit per-index entry or
// the scenario-level generic fallback.
func failureTextsResolvable(s *Scenario, tc ThemeContent) bool {
	if s.FailureText != "" {
		return true
	}
	for i := 0; i < ChoiceCount; i++ {
		if i == s.CorrectIndex {
			continue
		}
		if tc.FailureTexts[i] == "" {
			return false
		}
	}
	return true
}
