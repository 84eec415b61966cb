// Package scenario provides read-only ordered views over a loaded pack's
// scenarios. File order is preserved; progress tracking depends on it.
package scenario

import "github.com/abhisek/certquest/internal/pack"

// Index holds per-domain ordered scenario sequences with id lookup.
type Index struct {
	byDomain map[int][]pack.Scenario
	byID     map[int]map[string]int
}

// NewIndex builds an index over a loaded pack. When the pack's scoring
// config caps scenarios_per_domain, the index keeps the deterministic
// prefix of each domain's file order.
func NewIndex(p *pack.CertificationPack) *Index {
	idx := &Index{
		byDomain: make(map[int][]pack.Scenario, len(p.Domains)),
		byID:     make(map[int]map[string]int, len(p.Domains)),
	}
	cap := p.Scoring.ScenariosPerDomain
	for _, d := range p.Domains {
		list := p.Scenarios[d.ID]
		if cap > 0 && len(list) > cap {
			list = list[:cap]
		}
		idx.byDomain[d.ID] = list
		positions := make(map[string]int, len(list))
		for i := range list {
			positions[list[i].ID] = i
		}
		idx.byID[d.ID] = positions
	}
	return idx
}

// ForDomain returns a domain's scenarios in file order.
func (idx *Index) ForDomain(domainID int) []pack.Scenario {
	return idx.byDomain[domainID]
}

// At returns the scenario at a 0-based position within a domain. The
// second return is false past the end of the domain: a normal terminal
// signal, not an error.
func (idx *Index) At(domainID, position int) (*pack.Scenario, bool) {
	list := idx.byDomain[domainID]
	if position < 0 || position >= len(list) {
		return nil, false
	}
	return &list[position], true
}

// ByID returns a domain's scenario with the given identifier.
func (idx *Index) ByID(domainID int, id string) (*pack.Scenario, bool) {
	pos, ok := idx.byID[domainID][id]
	if !ok {
		return nil, false
	}
	return &idx.byDomain[domainID][pos], true
}

// Len returns the number of scenarios in a domain.
func (idx *Index) Len(domainID int) int {
	return len(idx.byDomain[domainID])
}

// Remaining returns how many scenarios a domain still holds at or after
// the given position.
func (idx *Index) Remaining(domainID, position int) int {
	n := len(idx.byDomain[domainID]) - position
	if n < 0 {
		return 0
	}
	return n
}
