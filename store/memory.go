// store/memory.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"flavorquest-system/models"
)

// Memory is the in-process demo backend. One mutex guards everything;
// traffic in demo mode is a handful of browser sessions, not a fleet.
type Memory struct {
	mu          sync.RWMutex
	users       map[string]models.AppUser
	progress    map[string]models.UserProgress // key: userID + ":" + pathID
	completions map[string][]models.Completion // key: userID, append-only
	posts       []models.Post
	likes       map[string]map[string]struct{} // postID -> userIDs
	comments    map[string][]models.Comment    // postID
}

// NewMemory returns an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:       make(map[string]models.AppUser),
		progress:    make(map[string]models.UserProgress),
		completions: make(map[string][]models.Completion),
		likes:       make(map[string]map[string]struct{}),
		comments:    make(map[string][]models.Comment),
	}
}

// NewMemoryWithDemoData returns an in-memory store seeded with the demo
// users everyone starts the app with.
func NewMemoryWithDemoData() *Memory {
	m := NewMemory()
	now := time.Now()
	demo := []models.AppUser{
		{ID: "1", DisplayName: "Sarah Chen", Email: "sarah@example.com", Dietary: []string{"Vegetarian"}, IsDemo: true},
		{ID: "2", DisplayName: "Mike Tan", Email: "mike@example.com", IsDemo: true},
		{ID: "3", DisplayName: "Emma Lim", Email: "emma@example.com", Dietary: []string{"Gluten-free"}, IsDemo: true},
		{ID: "admin", DisplayName: "Admin User", Email: "admin@example.com", IsDemo: true, IsAdmin: true},
	}
	for _, u := range demo {
		m.users[u.ID] = u
	}
	// The admin account demos a mid-journey state.
	m.progress["admin:sg_general"] = models.UserProgress{
		UserID:                "admin",
		PathID:                "sg_general",
		UnlockedStoneIDs:      []string{"stone001", "stone002", "stone003", "stone004"},
		CompletedChallengeIDs: []string{"stone001-challenge001", "stone001-challenge002", "stone002-challenge001"},
		Points:                300,
		UpdatedAt:             now,
	}
	for _, chID := range m.progress["admin:sg_general"].CompletedChallengeIDs {
		m.completions["admin"] = append(m.completions["admin"], models.Completion{
			ID:          "seed-" + chID,
			UserID:      "admin",
			ChallengeID: chID,
			CreatedAt:   now,
		})
	}
	return m
}

func progressKey(userID, pathID string) string { return userID + ":" + pathID }

func (m *Memory) GetProgress(ctx context.Context, userID, pathID string) (models.UserProgress, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.progress[progressKey(userID, pathID)]
	if !ok {
		return models.UserProgress{}, ErrNotFound
	}
	return cloneProgress(p), nil
}

func (m *Memory) SaveProgress(ctx context.Context, p models.UserProgress) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.progress[progressKey(p.UserID, p.PathID)] = cloneProgress(p)
	return nil
}

func (m *Memory) AddCompletion(ctx context.Context, c models.Completion) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completions[c.UserID] = append(m.completions[c.UserID], c)
	return nil
}

func (m *Memory) ListCompletionsByUser(ctx context.Context, userID string) ([]models.Completion, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Completion, len(m.completions[userID]))
	copy(out, m.completions[userID])
	return out, nil
}

func (m *Memory) AddPost(ctx context.Context, p models.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.posts = append(m.posts, p)
	return nil
}

func (m *Memory) ListPosts(ctx context.Context) ([]models.Post, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Post, len(m.posts))
	copy(out, m.posts)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) ToggleLike(ctx context.Context, postID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := m.likes[postID]
	if set == nil {
		set = make(map[string]struct{})
		m.likes[postID] = set
	}
	if _, liked := set[userID]; liked {
		delete(set, userID)
	} else {
		set[userID] = struct{}{}
	}
	return nil
}

func (m *Memory) Likes(ctx context.Context, postID, viewerID string) (int, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set := m.likes[postID]
	_, byViewer := set[viewerID]
	return len(set), byViewer, nil
}

func (m *Memory) AddComment(ctx context.Context, c models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.comments[c.PostID] = append(m.comments[c.PostID], c)
	return nil
}

func (m *Memory) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Comment, len(m.comments[postID]))
	copy(out, m.comments[postID])
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *Memory) CommentCount(ctx context.Context, postID string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.comments[postID]), nil
}

func (m *Memory) GetUser(ctx context.Context, userID string) (models.AppUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[userID]
	if !ok {
		return models.AppUser{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) UpsertUser(ctx context.Context, u models.AppUser) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *Memory) ListUsers(ctx context.Context) ([]models.AppUser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.AppUser, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// cloneProgress copies the slice fields so callers cannot alias stored state.
func cloneProgress(p models.UserProgress) models.UserProgress {
	p.UnlockedStoneIDs = append([]string(nil), p.UnlockedStoneIDs...)
	p.CompletedChallengeIDs = append([]string(nil), p.CompletedChallengeIDs...)
	return p
}
