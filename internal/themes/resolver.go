// Package themes resolves which presentation skins a pack offers and
// fetches theme-specific content defensively at read time. Validation
// guarantees full theme coverage for packs admitted to the registry, but
// the resolver never trusts that: an inconsistent pack degrades to a
// fallback instead of aborting a running session.
package themes

import (
	"errors"
	"fmt"

	"github.com/abhisek/certquest/internal/pack"
)

// ErrThemeNotFound is returned when a scenario lacks content for a theme
// key the pack declares.
var ErrThemeNotFound = errors.New("theme content not found")

// Available returns a pack's theme keys in declaration order.
func Available(p *pack.CertificationPack) []string {
	return p.Themes.Keys()
}

// AutoSelect returns the single theme key when the pack declares exactly
// one, in which case the session skips theme selection.
func AutoSelect(p *pack.CertificationPack) (string, bool) {
	keys := p.Themes.Keys()
	if len(keys) == 1 {
		return keys[0], true
	}
	return "", false
}

// ResolveContent returns the scenario content for a theme key, or
// ErrThemeNotFound if the scenario has no entry for it.
func ResolveContent(s *pack.Scenario, key string) (pack.ThemeContent, error) {
	tc, ok := s.Themes[key]
	if !ok {
		return pack.ThemeContent{}, fmt.Errorf("scenario %q, theme %q: %w", s.ID, key, ErrThemeNotFound)
	}
	return tc, nil
}

// ContentOrFallback resolves scenario content without failing: the
// requested theme first, then the pack's first declared theme, then a
// generic placeholder. Sessions use this so a malformed scenario can
// never abort play.
func ContentOrFallback(p *pack.CertificationPack, s *pack.Scenario, key string) pack.ThemeContent {
	if tc, err := ResolveContent(s, key); err == nil {
		return tc
	}
	for _, fallback := range p.Themes.Keys() {
		if tc, err := ResolveContent(s, fallback); err == nil {
			return tc
		}
	}
	return pack.ThemeContent{
		Title:     "SCENARIO",
		Narrative: "(content unavailable for this theme)",
		Choices:   make([]string, pack.ChoiceCount),
	}
}

// ResolveDomainHeader returns a domain's themed banner content.
func ResolveDomainHeader(d *pack.Domain, key string) (pack.DomainHeader, bool) {
	h, ok := d.Themes[key]
	return h, ok
}

// Definition returns the theme definition for a key, with zero-value
// fields filled from sensible defaults.
func Definition(p *pack.CertificationPack, key string) pack.ThemeDefinition {
	def, _ := p.Themes.Get(key)
	if def.PlayerTerm == "" {
		def.PlayerTerm = "Player"
	}
	if def.Narrator == "" {
		def.Narrator = "NARRATOR"
	}
	if def.DisplayName == "" {
		def.DisplayName = def.GameTitle
	}
	if def.DisplayName == "" {
		def.DisplayName = key
	}
	return def
}

// IntroFor returns the themed introduction for a domain, falling back to
// the intro's default text. ok is false when the pack has no intro for
// the domain at all.
func IntroFor(p *pack.CertificationPack, domainID int, key string) (pack.IntroText, bool) {
	intro, ok := p.Intros[domainID]
	if !ok {
		return pack.IntroText{}, false
	}
	if txt, ok := intro.PerTheme[key]; ok && txt.Introduction != "" {
		return txt, true
	}
	if intro.Default.Introduction != "" {
		return intro.Default, true
	}
	return pack.IntroText{}, false
}
