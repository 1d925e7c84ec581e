// services/generator.go
package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"flavorquest-system/catalog"
	"flavorquest-system/models"
	"flavorquest-system/utils"
)

// CacheVersion invalidates every cached generation result when the prompt
// or content pipeline changes shape.
const CacheVersion = "1.2.0"

// DefaultCacheTTL is how long a (stone, user) generation result is reused.
const DefaultCacheTTL = 24 * time.Hour

// GeneratorService fills a stone's generated-content slots by calling the
// remote challenge-generation function. Results are cached per (stone, user)
// and registered into the catalog through the same identity checks as seed
// content. A remote failure is an error; the static catalog keeps serving
// and nothing gets fabricated locally.
type GeneratorService struct {
	Catalog *catalog.Catalog
	Users   *UserService

	baseURL string
	token   string
	client  *http.Client
	ttl     time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	version    string
	challenges []models.Challenge
	expiresAt  time.Time
}

type generateRequest struct {
	StoneTheme              string   `json:"stoneTheme"`
	UserDietaryRestrictions []string `json:"userDietaryRestrictions,omitempty"`
	Count                   int      `json:"count"`
}

type generatedChallenge struct {
	Type        string `json:"type"` // eat | drink | cook
	Title       string `json:"title"`
	Description string `json:"description"`
	Points      int    `json:"points"`
}

type generateResponse struct {
	Challenges []generatedChallenge `json:"challenges"`
}

func NewGeneratorService(cat *catalog.Catalog, users *UserService, baseURL, token string) *GeneratorService {
	return &GeneratorService{
		Catalog: cat,
		Users:   users,
		baseURL: baseURL,
		token:   token,
		client:  utils.HTTPClient,
		ttl:     DefaultCacheTTL,
		cache:   make(map[string]cacheEntry),
	}
}

// GenerateForStone regenerates the stone's AI slots for one user and
// registers the results in the catalog. Cached results are reused until
// they expire or CacheVersion moves.
func (s *GeneratorService) GenerateForStone(ctx context.Context, stoneID, userID string) ([]models.Challenge, error) {
	stone, ok := s.Catalog.Stone(stoneID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStone, stoneID)
	}

	key := stoneID + "|" + userID
	s.mu.Lock()
	if entry, hit := s.cache[key]; hit && entry.version == CacheVersion && time.Now().Before(entry.expiresAt) {
		cached := append([]models.Challenge(nil), entry.challenges...)
		s.mu.Unlock()
		return cached, nil
	}
	s.mu.Unlock()

	slots := s.generatedSlots(stone)
	if len(slots) == 0 {
		return nil, nil
	}

	generated, err := s.callRemote(ctx, generateRequest{
		StoneTheme:              stone.Theme,
		UserDietaryRestrictions: s.Users.DietaryFor(ctx, userID),
		Count:                   len(slots),
	})
	if err != nil {
		return nil, err
	}

	out := make([]models.Challenge, 0, len(slots))
	for i, slot := range slots {
		if i >= len(generated) {
			break
		}
		g := generated[i]
		ch := models.Challenge{
			ID:             slot,
			StoneID:        stone.ID,
			Type:           challengeType(g.Type),
			Title:          g.Title,
			Description:    g.Description,
			Points:         g.Points,
			AIHintEligible: true,
			AIGenerated:    true,
		}
		if ch.Title == "" {
			ch.Title = ch.Description
		}
		if ch.Points <= 0 {
			ch.Points = catalog.BasePoints
		}
		if err := s.Catalog.Register(ch); err != nil {
			return nil, fmt.Errorf("register generated challenge: %w", err)
		}
		out = append(out, ch)
	}

	s.mu.Lock()
	s.cache[key] = cacheEntry{version: CacheVersion, challenges: out, expiresAt: time.Now().Add(s.ttl)}
	s.mu.Unlock()
	return out, nil
}

// SweepExpiredCache drops stale or version-mismatched cache entries.
// Called periodically by the scheduler.
func (s *GeneratorService) SweepExpiredCache() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	now := time.Now()
	for key, entry := range s.cache {
		if entry.version != CacheVersion || now.After(entry.expiresAt) {
			delete(s.cache, key)
			removed++
		}
	}
	return removed
}

// generatedSlots returns the stone's challenge ids whose content is
// generator-owned (marked generated, or not yet present at all).
func (s *GeneratorService) generatedSlots(stone models.Stone) []string {
	var slots []string
	for _, chID := range stone.ChallengeIDs {
		existing, ok := s.Catalog.Challenge(chID)
		if !ok || existing.AIGenerated {
			slots = append(slots, chID)
		}
	}
	return slots
}

func (s *GeneratorService) callRemote(ctx context.Context, reqBody generateRequest) ([]generatedChallenge, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("encode generation request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build generation request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call generation service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("generation service returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode generation response: %w", err)
	}
	if len(parsed.Challenges) == 0 {
		return nil, fmt.Errorf("generation service returned no challenges")
	}
	return parsed.Challenges, nil
}

func challengeType(raw string) models.ChallengeType {
	switch models.ChallengeType(raw) {
	case models.ChallengeDrink:
		return models.ChallengeDrink
	case models.ChallengeCook:
		return models.ChallengeCook
	default:
		return models.ChallengeEat
	}
}
