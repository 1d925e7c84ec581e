package services

import (
	"context"
	"errors"
	"testing"

	"flavorquest-system/catalog"
	"flavorquest-system/models"
	"flavorquest-system/store"
)

func newTestService(t *testing.T) (*ProgressionService, *store.Memory) {
	t.Helper()
	cat, err := catalog.NewFromSeed()
	if err != nil {
		t.Fatalf("catalog.NewFromSeed() error = %v", err)
	}
	mem := store.NewMemory()
	return NewProgressionService(mem, cat, nil), mem
}

func TestGetProgressDefaultsToFirstStone(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.GetProgress(context.Background(), "newuser", "sg_general")
	if err != nil {
		t.Fatalf("GetProgress() error = %v", err)
	}
	if len(p.UnlockedStoneIDs) != 1 || p.UnlockedStoneIDs[0] != "stone001" {
		t.Errorf("unlocked = %v, want [stone001]", p.UnlockedStoneIDs)
	}
	if p.Points != 0 || len(p.CompletedChallengeIDs) != 0 {
		t.Errorf("fresh progress should be empty: %+v", p)
	}
}

func TestRecordCompletionEndToEnd(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	completion, progress, err := svc.RecordCompletion(ctx, "u1", "stone001-challenge001", Proof{
		Caption: "so good",
		Rating:  5,
	})
	if err != nil {
		t.Fatalf("RecordCompletion() error = %v", err)
	}
	if completion.ChallengeID != "stone001-challenge001" {
		t.Errorf("completion challenge = %q", completion.ChallengeID)
	}
	if completion.DisplayTitle != "Hainanese Chicken Rice" {
		t.Errorf("completion title = %q", completion.DisplayTitle)
	}
	if progress.Points != 100 {
		t.Errorf("points = %d, want 100", progress.Points)
	}
	if len(progress.CompletedChallengeIDs) != 1 || progress.CompletedChallengeIDs[0] != "stone001-challenge001" {
		t.Errorf("completed = %v", progress.CompletedChallengeIDs)
	}
	if !progress.HasUnlocked("stone002") {
		t.Errorf("one completion should unlock stone002, unlocked = %v", progress.UnlockedStoneIDs)
	}

	// Persisted, not just returned.
	stored, err := mem.GetProgress(ctx, "u1", "sg_general")
	if err != nil {
		t.Fatalf("stored progress missing: %v", err)
	}
	if stored.Points != 100 {
		t.Errorf("stored points = %d", stored.Points)
	}
}

func TestRecordCompletionIdempotentScoring(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	var progress models.UserProgress
	var err error
	for i := 0; i < 2; i++ {
		_, progress, err = svc.RecordCompletion(ctx, "u1", "stone001-challenge001", Proof{})
		if err != nil {
			t.Fatalf("RecordCompletion() #%d error = %v", i+1, err)
		}
	}

	if progress.Points != 100 {
		t.Errorf("duplicate submission scored twice: points = %d, want 100", progress.Points)
	}
	if len(progress.CompletedChallengeIDs) != 1 {
		t.Errorf("completed ids = %v, want 1 distinct entry", progress.CompletedChallengeIDs)
	}
	// The log still keeps both rows; only the derived state deduplicates.
	completions, _ := mem.ListCompletionsByUser(ctx, "u1")
	if len(completions) != 2 {
		t.Errorf("completion log has %d rows, want 2", len(completions))
	}
}

func TestRecordCompletionCanonicalizesLegacyIDs(t *testing.T) {
	svc, _ := newTestService(t)

	completion, _, err := svc.RecordCompletion(context.Background(), "u1", "stone1-challenge2", Proof{})
	if err != nil {
		t.Fatalf("RecordCompletion() error = %v", err)
	}
	if completion.ChallengeID != "stone001-challenge002" {
		t.Errorf("stored challenge id = %q, want canonical stone001-challenge002", completion.ChallengeID)
	}
}

func TestRecordCompletionRejectsInvalidID(t *testing.T) {
	svc, mem := newTestService(t)

	_, _, err := svc.RecordCompletion(context.Background(), "u1", "not-a-challenge", Proof{})
	if !errors.Is(err, ErrInvalidChallengeID) {
		t.Fatalf("error = %v, want ErrInvalidChallengeID", err)
	}
	// Nothing durable may happen on a rejected submission.
	if completions, _ := mem.ListCompletionsByUser(context.Background(), "u1"); len(completions) != 0 {
		t.Error("rejected submission must not be logged")
	}
}

func TestRecordCompletionRejectsUnknownChallenge(t *testing.T) {
	svc, _ := newTestService(t)

	// Well-formed but absent from the catalog: no placeholder is fabricated.
	_, _, err := svc.RecordCompletion(context.Background(), "u1", "stone001-challenge099", Proof{})
	if !errors.Is(err, ErrUnknownChallenge) {
		t.Fatalf("error = %v, want ErrUnknownChallenge", err)
	}
}

func TestUnlockDoesNotCascade(t *testing.T) {
	svc, mem := newTestService(t)
	ctx := context.Background()

	// Back-fill the log with completions spanning two stones, then record
	// one for stone001. Only stone001's next stone may unlock this round.
	for _, chID := range []string{"stone002-challenge001", "stone003-challenge001"} {
		if err := mem.AddCompletion(ctx, models.Completion{ID: "bf-" + chID, UserID: "u1", ChallengeID: chID}); err != nil {
			t.Fatal(err)
		}
	}

	_, progress, err := svc.RecordCompletion(ctx, "u1", "stone001-challenge001", Proof{})
	if err != nil {
		t.Fatalf("RecordCompletion() error = %v", err)
	}
	if !progress.HasUnlocked("stone002") {
		t.Error("stone002 should unlock from the just-completed stone001")
	}
	if progress.HasUnlocked("stone003") || progress.HasUnlocked("stone004") {
		t.Errorf("unlock cascaded beyond the current stone: %v", progress.UnlockedStoneIDs)
	}
}

func TestUnlockMonotonicAcrossCompletions(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	var prevUnlocked []string
	for _, chID := range []string{
		"stone001-challenge001",
		"stone001-challenge002",
		"stone002-challenge001",
		"stone002-challenge001", // duplicate
		"stone003-challenge001",
	} {
		_, progress, err := svc.RecordCompletion(ctx, "u1", chID, Proof{})
		if err != nil {
			t.Fatalf("RecordCompletion(%s) error = %v", chID, err)
		}
		for _, id := range prevUnlocked {
			if !progress.HasUnlocked(id) {
				t.Fatalf("after %s, previously unlocked %s disappeared", chID, id)
			}
		}
		prevUnlocked = progress.UnlockedStoneIDs
	}
}

func TestLastStoneHasNoNext(t *testing.T) {
	svc, _ := newTestService(t)

	_, progress, err := svc.RecordCompletion(context.Background(), "u1", "stone004-challenge001", Proof{})
	if err != nil {
		t.Fatalf("RecordCompletion() error = %v", err)
	}
	// stone004 is last; the unlock evaluation must be a clean no-op.
	if len(progress.UnlockedStoneIDs) != 1 || progress.UnlockedStoneIDs[0] != "stone001" {
		t.Errorf("unlocked = %v, want just the default first stone", progress.UnlockedStoneIDs)
	}
}

func TestNotifierReceivesCompletion(t *testing.T) {
	cat, err := catalog.NewFromSeed()
	if err != nil {
		t.Fatal(err)
	}
	var gotCompletion models.Completion
	var gotProgress models.UserProgress
	svc := NewProgressionService(store.NewMemory(), cat, func(c models.Completion, p models.UserProgress) {
		gotCompletion = c
		gotProgress = p
	})

	_, _, err = svc.RecordCompletion(context.Background(), "u1", "stone001-challenge001", Proof{Caption: "yum"})
	if err != nil {
		t.Fatalf("RecordCompletion() error = %v", err)
	}
	if gotCompletion.Caption != "yum" {
		t.Errorf("notifier completion = %+v", gotCompletion)
	}
	if gotProgress.Points != 100 {
		t.Errorf("notifier progress points = %d", gotProgress.Points)
	}
}

func TestListStonesWithStatus(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.RecordCompletion(ctx, "u1", "stone001-challenge001", Proof{}); err != nil {
		t.Fatal(err)
	}

	statuses, err := svc.ListStonesWithStatus(ctx, "u1", "sg_general")
	if err != nil {
		t.Fatalf("ListStonesWithStatus() error = %v", err)
	}
	if len(statuses) != 4 {
		t.Fatalf("expected 4 stones, got %d", len(statuses))
	}
	if !statuses[0].Unlocked || statuses[0].Progress.CompletedCount != 1 {
		t.Errorf("stone001 status: %+v", statuses[0])
	}
	if !statuses[1].Unlocked {
		t.Error("stone002 should be unlocked")
	}
	if statuses[2].Unlocked || statuses[3].Unlocked {
		t.Error("stone003/stone004 should stay locked")
	}
}

func TestPathAndRegionProgress(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, chID := range []string{"stone001-challenge001", "stone002-challenge001"} {
		if _, _, err := svc.RecordCompletion(ctx, "u1", chID, Proof{}); err != nil {
			t.Fatal(err)
		}
	}

	path, err := svc.PathProgress(ctx, "u1", "sg_general")
	if err != nil {
		t.Fatalf("PathProgress() error = %v", err)
	}
	if path.CompletedCount != 2 || path.Total != 12 || path.StonesCleared != 2 {
		t.Errorf("path progress = %+v", path)
	}

	// Single-path country: region equals path.
	region, err := svc.RegionProgress(ctx, "u1", "sg")
	if err != nil {
		t.Fatalf("RegionProgress() error = %v", err)
	}
	if region != path {
		t.Errorf("region %+v != path %+v", region, path)
	}
}
