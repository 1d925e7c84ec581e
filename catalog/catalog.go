// catalog/catalog.go
package catalog

import (
	"fmt"
	"sort"
	"sync"

	"flavorquest-system/ids"
	"flavorquest-system/models"
)

// BasePoints is the default reward for a challenge. Seed and generated
// content may override it per challenge.
const BasePoints = 100

// IntegrityError reports catalog content that fails the self-check. It is
// fatal at load time; a broken catalog must never serve requests.
type IntegrityError struct {
	Detail string
}

func (e *IntegrityError) Error() string {
	return "catalog integrity violation: " + e.Detail
}

// Catalog is the immutable registry of stones and challenges, plus the path
// and country groupings they hang off. Stones never change after New;
// Register only adds generated challenges into pre-declared stone slots, so
// lookups and ordering stay stable for the life of the process.
type Catalog struct {
	mu         sync.RWMutex
	stones     map[string]models.Stone
	challenges map[string]models.Challenge
	ordered    []models.Stone // ascending by Order
	paths      map[string]models.Path
	countries  map[string]models.Country
}

// New builds and validates a catalog. Any integrity violation fails the
// build; callers treat that as a startup abort.
func New(stones []models.Stone, challenges []models.Challenge, paths []models.Path, countries []models.Country) (*Catalog, error) {
	c := &Catalog{
		stones:     make(map[string]models.Stone, len(stones)),
		challenges: make(map[string]models.Challenge, len(challenges)),
		paths:      make(map[string]models.Path, len(paths)),
		countries:  make(map[string]models.Country, len(countries)),
	}

	for _, p := range paths {
		c.paths[p.ID] = p
	}
	for _, co := range countries {
		c.countries[co.ID] = co
	}

	for _, s := range stones {
		if !ids.IsStoneID(s.ID) {
			return nil, &IntegrityError{Detail: fmt.Sprintf("stone id %q is not canonical", s.ID)}
		}
		if s.ID != ids.StoneID(s.Order) {
			return nil, &IntegrityError{Detail: fmt.Sprintf("stone %q does not match its order %d", s.ID, s.Order)}
		}
		if len(s.ChallengeIDs) == 0 {
			return nil, &IntegrityError{Detail: fmt.Sprintf("stone %q has no challenges", s.ID)}
		}
		if _, dup := c.stones[s.ID]; dup {
			return nil, &IntegrityError{Detail: fmt.Sprintf("duplicate stone %q", s.ID)}
		}
		for _, chID := range s.ChallengeIDs {
			owner, ok := ids.StoneIDFromChallengeID(chID)
			if !ok || owner != s.ID {
				return nil, &IntegrityError{Detail: fmt.Sprintf("stone %q lists foreign challenge id %q", s.ID, chID)}
			}
		}
		c.stones[s.ID] = s
		c.ordered = append(c.ordered, s)
	}

	sort.Slice(c.ordered, func(i, j int) bool { return c.ordered[i].Order < c.ordered[j].Order })

	// Orders must be contiguous from 1: a gap means the unlock sequence
	// would dead-end.
	for i, s := range c.ordered {
		if s.Order != i+1 {
			return nil, &IntegrityError{Detail: fmt.Sprintf("stone orders not contiguous at %q (order %d, expected %d)", s.ID, s.Order, i+1)}
		}
	}

	for _, ch := range challenges {
		if err := c.checkChallenge(ch); err != nil {
			return nil, err
		}
		c.challenges[ch.ID] = ch
	}

	return c, nil
}

func (c *Catalog) checkChallenge(ch models.Challenge) error {
	if !ids.IsChallengeID(ch.ID) {
		return &IntegrityError{Detail: fmt.Sprintf("challenge id %q is not canonical", ch.ID)}
	}
	owner, _ := ids.StoneIDFromChallengeID(ch.ID)
	if ch.StoneID != owner {
		return &IntegrityError{Detail: fmt.Sprintf("challenge %q stored stone %q disagrees with id-derived %q", ch.ID, ch.StoneID, owner)}
	}
	if _, ok := c.stones[owner]; !ok {
		return &IntegrityError{Detail: fmt.Sprintf("challenge %q belongs to unknown stone %q", ch.ID, owner)}
	}
	if ch.Points <= 0 {
		return &IntegrityError{Detail: fmt.Sprintf("challenge %q has non-positive points %d", ch.ID, ch.Points)}
	}
	return nil
}

// Stone looks up a stone by canonical id.
func (c *Catalog) Stone(id string) (models.Stone, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.stones[id]
	return s, ok
}

// Challenge looks up a challenge by canonical id.
func (c *Catalog) Challenge(id string) (models.Challenge, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ch, ok := c.challenges[id]
	return ch, ok
}

// StonesOrdered returns all stones ascending by order.
func (c *Catalog) StonesOrdered() []models.Stone {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]models.Stone, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// StonesForPath returns the path's stones ascending by order.
func (c *Catalog) StonesForPath(pathID string) []models.Stone {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []models.Stone
	for _, s := range c.ordered {
		if s.PathID == pathID {
			out = append(out, s)
		}
	}
	return out
}

// StoneForChallenge resolves a canonical challenge id to its owning stone id.
func (c *Catalog) StoneForChallenge(challengeID string) (string, bool) {
	owner, ok := ids.StoneIDFromChallengeID(challengeID)
	if !ok {
		return "", false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	if _, present := c.stones[owner]; !present {
		return "", false
	}
	return owner, true
}

// NextStoneID returns the stone after currentStoneID in catalog order, or
// "" when current is last or unknown.
func (c *Catalog) NextStoneID(currentStoneID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i, s := range c.ordered {
		if s.ID == currentStoneID {
			if i+1 < len(c.ordered) {
				return c.ordered[i+1].ID
			}
			return ""
		}
	}
	return ""
}

// FirstStoneID returns the id of the path's first stone, falling back to the
// overall first stone for unknown paths.
func (c *Catalog) FirstStoneID(pathID string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.ordered {
		if s.PathID == pathID {
			return s.ID
		}
	}
	if len(c.ordered) > 0 {
		return c.ordered[0].ID
	}
	return ""
}

// Path looks up a path by id.
func (c *Catalog) Path(id string) (models.Path, bool) {
	p, ok := c.paths[id]
	return p, ok
}

// PathsForCountry returns a country's paths ascending by order.
func (c *Catalog) PathsForCountry(countryID string) []models.Path {
	var out []models.Path
	for _, p := range c.paths {
		if p.CountryID == countryID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Order < out[j].Order })
	return out
}

// Register adds a generated challenge to the catalog. The id must already be
// canonical and parse to a known stone: generated content goes through the
// same identity checks as seed content, no special casing downstream.
func (c *Catalog) Register(ch models.Challenge) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.checkChallenge(ch); err != nil {
		return err
	}
	c.challenges[ch.ID] = ch
	return nil
}
