// services/progression.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"flavorquest-system/catalog"
	"flavorquest-system/ids"
	"flavorquest-system/models"
	"flavorquest-system/store"
)

// CompletionNotifier receives the result of a recorded completion.
// Fire-and-forget: the recorder never waits on or inspects its outcome.
type CompletionNotifier func(models.Completion, models.UserProgress)

// Proof carries the user-supplied evidence for a completion. PhotoURL is an
// opaque handle from the upload layer; the engine just passes it through.
type Proof struct {
	PhotoURL   string
	Caption    string
	Rating     int // 1-5, 0 = unrated
	PlaceName  string
	UsedAIHint bool
}

// ProgressionService is the completion recorder: it canonicalizes input,
// appends to the completion log, re-derives progress from the full log and
// applies the unlock policy. Progress is never incremented in place: two
// writers racing on a double submission both recompute from the same
// append-only log and converge on the same state.
type ProgressionService struct {
	Store   store.ProgressStore
	Catalog *catalog.Catalog

	notify CompletionNotifier
}

func NewProgressionService(st store.ProgressStore, cat *catalog.Catalog, notify CompletionNotifier) *ProgressionService {
	return &ProgressionService{Store: st, Catalog: cat, notify: notify}
}

// RecordCompletion records one challenge completion and returns the
// completion plus the re-derived progress. Side effects are exactly one
// completion write and one progress write.
func (s *ProgressionService) RecordCompletion(ctx context.Context, userID, rawChallengeID string, proof Proof) (models.Completion, models.UserProgress, error) {
	challengeID := ids.CanonicalizeChallengeID(rawChallengeID, 0)
	if !ids.IsChallengeID(challengeID) {
		return models.Completion{}, models.UserProgress{}, fmt.Errorf("%w: %q", ErrInvalidChallengeID, rawChallengeID)
	}

	challenge, ok := s.Catalog.Challenge(challengeID)
	if !ok {
		return models.Completion{}, models.UserProgress{}, fmt.Errorf("%w: %q", ErrUnknownChallenge, challengeID)
	}
	stone, ok := s.Catalog.Stone(challenge.StoneID)
	if !ok {
		return models.Completion{}, models.UserProgress{}, fmt.Errorf("%w: %q", ErrUnknownStone, challenge.StoneID)
	}

	completion := models.Completion{
		ID:           uuid.NewString(),
		UserID:       userID,
		ChallengeID:  challengeID,
		DisplayTitle: challenge.Title,
		DisplayType:  string(challenge.Type),
		PhotoURL:     proof.PhotoURL,
		Caption:      proof.Caption,
		Rating:       proof.Rating,
		PlaceName:    proof.PlaceName,
		UsedAIHint:   proof.UsedAIHint,
		CreatedAt:    time.Now(),
	}
	if err := s.Store.AddCompletion(ctx, completion); err != nil {
		return models.Completion{}, models.UserProgress{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	progress, err := s.rebuildProgress(ctx, userID, stone.PathID)
	if err != nil {
		return models.Completion{}, models.UserProgress{}, err
	}

	// Unlock is evaluated once, for the just-completed challenge's stone
	// only. Back-filled histories do not cascade through later stones.
	if ShouldUnlockNext(stone, progress.CompletedSet()) {
		progress = ApplyUnlock(progress, s.Catalog.NextStoneID(stone.ID))
	}
	progress.UpdatedAt = completion.CreatedAt

	if err := s.Store.SaveProgress(ctx, progress); err != nil {
		return models.Completion{}, models.UserProgress{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	log.Printf("[RECORDER] %s completed %s → points=%d unlocked=%d",
		userID, challengeID, progress.Points, len(progress.UnlockedStoneIDs))

	if s.notify != nil {
		s.notify(completion, progress)
	}
	return completion, progress, nil
}

// GetProgress returns the stored progress for (user, path), or the lazy
// default: first stone unlocked, nothing completed, zero points.
func (s *ProgressionService) GetProgress(ctx context.Context, userID, pathID string) (models.UserProgress, error) {
	p, err := s.Store.GetProgress(ctx, userID, pathID)
	if errors.Is(err, store.ErrNotFound) {
		return s.defaultProgress(userID, pathID), nil
	}
	if err != nil {
		return models.UserProgress{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return p, nil
}

// StoneStatus is one path entry of ListStonesWithStatus.
type StoneStatus struct {
	Stone    models.Stone      `json:"stone"`
	Unlocked bool              `json:"unlocked"`
	Progress StoneProgressInfo `json:"progress"`
}

// ListStonesWithStatus projects the path's stones against the user's
// progress, in unlock order.
func (s *ProgressionService) ListStonesWithStatus(ctx context.Context, userID, pathID string) ([]StoneStatus, error) {
	progress, err := s.GetProgress(ctx, userID, pathID)
	if err != nil {
		return nil, err
	}
	completed := progress.CompletedSet()

	stones := s.Catalog.StonesForPath(pathID)
	out := make([]StoneStatus, 0, len(stones))
	for _, st := range stones {
		out = append(out, StoneStatus{
			Stone:    st,
			Unlocked: progress.HasUnlocked(st.ID),
			Progress: StoneProgress(st, completed),
		})
	}
	return out, nil
}

// PathProgress rolls stone progress up over one path.
func (s *ProgressionService) PathProgress(ctx context.Context, userID, pathID string) (GroupProgressInfo, error) {
	progress, err := s.GetProgress(ctx, userID, pathID)
	if err != nil {
		return GroupProgressInfo{}, err
	}
	return GroupProgress(s.Catalog.StonesForPath(pathID), progress.CompletedSet()), nil
}

// RegionProgress rolls stone progress up over every path of a country.
func (s *ProgressionService) RegionProgress(ctx context.Context, userID, countryID string) (GroupProgressInfo, error) {
	var total GroupProgressInfo
	for _, p := range s.Catalog.PathsForCountry(countryID) {
		g, err := s.PathProgress(ctx, userID, p.ID)
		if err != nil {
			return GroupProgressInfo{}, err
		}
		total.CompletedCount += g.CompletedCount
		total.Total += g.Total
		total.StonesCleared += g.StonesCleared
		total.StoneCount += g.StoneCount
	}
	return total, nil
}

// rebuildProgress re-derives the progress record from the user's full
// completion log: distinct ids in first-seen order, points summed once per
// distinct challenge. Duplicate submissions change neither.
func (s *ProgressionService) rebuildProgress(ctx context.Context, userID, pathID string) (models.UserProgress, error) {
	completions, err := s.Store.ListCompletionsByUser(ctx, userID)
	if err != nil {
		return models.UserProgress{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}

	progress, err := s.GetProgress(ctx, userID, pathID)
	if err != nil {
		return models.UserProgress{}, err
	}

	seen := make(map[string]struct{}, len(completions))
	var distinct []string
	points := 0
	for _, c := range completions {
		if _, dup := seen[c.ChallengeID]; dup {
			continue
		}
		seen[c.ChallengeID] = struct{}{}
		distinct = append(distinct, c.ChallengeID)
		if ch, ok := s.Catalog.Challenge(c.ChallengeID); ok {
			points += ch.Points
		} else {
			// Logged but no longer in the catalog (generated content from a
			// previous process). The completion happened; score it at base.
			points += catalog.BasePoints
		}
	}

	progress.CompletedChallengeIDs = distinct
	progress.Points = points
	return progress, nil
}

func (s *ProgressionService) defaultProgress(userID, pathID string) models.UserProgress {
	return models.UserProgress{
		UserID:           userID,
		PathID:           pathID,
		UnlockedStoneIDs: []string{s.Catalog.FirstStoneID(pathID)},
		Points:           0,
		UpdatedAt:        time.Now(),
	}
}
