package catalog

import (
	"testing"

	"flavorquest-system/models"
)

func testStones() []models.Stone {
	return []models.Stone{
		{ID: "stone001", Name: "One", Order: 1, PathID: "sg_general", ChallengeIDs: []string{"stone001-challenge001"}},
		{ID: "stone002", Name: "Two", Order: 2, PathID: "sg_general", ChallengeIDs: []string{"stone002-challenge001"}},
	}
}

func testChallenges() []models.Challenge {
	return []models.Challenge{
		{ID: "stone001-challenge001", StoneID: "stone001", Title: "A", Points: BasePoints},
		{ID: "stone002-challenge001", StoneID: "stone002", Title: "B", Points: BasePoints},
	}
}

func TestNewFromSeed(t *testing.T) {
	c, err := NewFromSeed()
	if err != nil {
		t.Fatalf("NewFromSeed() error = %v", err)
	}
	ordered := c.StonesOrdered()
	if len(ordered) != 4 {
		t.Fatalf("expected 4 seed stones, got %d", len(ordered))
	}
	for i, s := range ordered {
		if s.Order != i+1 {
			t.Errorf("stone %s out of order at index %d", s.ID, i)
		}
		if len(s.ChallengeIDs) != 3 {
			t.Errorf("stone %s should have 3 challenges", s.ID)
		}
	}
	if got := c.FirstStoneID("sg_general"); got != "stone001" {
		t.Errorf("FirstStoneID = %q, want stone001", got)
	}
}

func TestNewRejectsOrderGap(t *testing.T) {
	stones := testStones()
	stones[1].ID = "stone003"
	stones[1].Order = 3
	stones[1].ChallengeIDs = []string{"stone003-challenge001"}
	if _, err := New(stones, nil, nil, nil); err == nil {
		t.Fatal("expected integrity error for order gap")
	}
}

func TestNewRejectsStoneMismatch(t *testing.T) {
	chals := testChallenges()
	chals[0].StoneID = "stone002" // disagrees with id-derived stone001
	if _, err := New(testStones(), chals, nil, nil); err == nil {
		t.Fatal("expected integrity error for stone id mismatch")
	}
}

func TestNewRejectsForeignChallengeID(t *testing.T) {
	stones := testStones()
	stones[0].ChallengeIDs = []string{"stone002-challenge009"}
	if _, err := New(stones, nil, nil, nil); err == nil {
		t.Fatal("expected integrity error for foreign challenge id in stone")
	}
}

func TestNextStoneID(t *testing.T) {
	c, err := New(testStones(), testChallenges(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if got := c.NextStoneID("stone001"); got != "stone002" {
		t.Errorf("NextStoneID(stone001) = %q, want stone002", got)
	}
	if got := c.NextStoneID("stone002"); got != "" {
		t.Errorf("NextStoneID(stone002) = %q, want empty (last stone)", got)
	}
	if got := c.NextStoneID("stone999"); got != "" {
		t.Errorf("NextStoneID(unknown) = %q, want empty", got)
	}
}

func TestStoneForChallenge(t *testing.T) {
	c, err := New(testStones(), testChallenges(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	stone, ok := c.StoneForChallenge("stone002-challenge001")
	if !ok || stone != "stone002" {
		t.Fatalf("StoneForChallenge = (%q, %v), want (stone002, true)", stone, ok)
	}
	if _, ok := c.StoneForChallenge("stone009-challenge001"); ok {
		t.Error("challenge of unknown stone should not resolve")
	}
	if _, ok := c.StoneForChallenge("not-an-id"); ok {
		t.Error("malformed id should not resolve")
	}
}

func TestRegister(t *testing.T) {
	c, err := New(testStones(), testChallenges(), nil, nil)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	generated := models.Challenge{
		ID: "stone001-challenge002", StoneID: "stone001",
		Title: "Generated", Points: BasePoints, AIGenerated: true,
	}
	if err := c.Register(generated); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	got, ok := c.Challenge("stone001-challenge002")
	if !ok || !got.AIGenerated {
		t.Fatal("registered challenge should be retrievable")
	}

	// Generated content is held to the same identity rules as seed content.
	if err := c.Register(models.Challenge{ID: "stone009-challenge001", StoneID: "stone009", Title: "X", Points: 100}); err == nil {
		t.Error("Register should reject challenges of unknown stones")
	}
	if err := c.Register(models.Challenge{ID: "stone1-challenge2", StoneID: "stone001", Title: "X", Points: 100}); err == nil {
		t.Error("Register should reject non-canonical ids")
	}
}
