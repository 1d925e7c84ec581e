// services/feed.go
package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"flavorquest-system/catalog"
	"flavorquest-system/ids"
	"flavorquest-system/models"
	"flavorquest-system/store"
)

// FeedService turns completions into feed posts and serves likes/comments.
// It sits downstream of the recorder's notifier; the progression engine
// itself knows nothing about feeds.
type FeedService struct {
	Store   store.Store
	Catalog *catalog.Catalog
}

func NewFeedService(st store.Store, cat *catalog.Catalog) *FeedService {
	return &FeedService{Store: st, Catalog: cat}
}

// PostFromCompletion creates the feed entry for a recorded completion.
// Wired as the recorder's CompletionNotifier; failures are logged, never
// propagated back into the recorder.
func (s *FeedService) PostFromCompletion(completion models.Completion, _ models.UserProgress) {
	ctx := context.Background()

	user, err := s.Store.GetUser(ctx, completion.UserID)
	if err != nil {
		log.Printf("[FEED] no user %s for completion %s: %v", completion.UserID, completion.ID, err)
		return
	}

	var pathID, countryID string
	if stoneID, ok := ids.StoneIDFromChallengeID(completion.ChallengeID); ok {
		if stone, ok := s.Catalog.Stone(stoneID); ok {
			pathID = stone.PathID
			if path, ok := s.Catalog.Path(pathID); ok {
				countryID = path.CountryID
			}
		}
	}

	caption := completion.Caption
	if caption == "" {
		caption = "Just completed a challenge!"
	}

	post := models.Post{
		ID:             "post-" + completion.ID,
		UserID:         completion.UserID,
		UserName:       user.DisplayName,
		UserPhoto:      user.Photo,
		ChallengeID:    completion.ChallengeID,
		ChallengeTitle: completion.DisplayTitle,
		ChallengeType:  completion.DisplayType,
		Photo:          completion.PhotoURL,
		Caption:        caption,
		Rating:         completion.Rating,
		PlaceName:      completion.PlaceName,
		PathID:         pathID,
		CountryID:      countryID,
		CreatedAt:      completion.CreatedAt,
	}
	if err := s.Store.AddPost(ctx, post); err != nil {
		log.Printf("[FEED] failed to add post for completion %s: %v", completion.ID, err)
	}
}

// ListFeed returns all posts newest-first, enriched with like and comment
// counts for the viewing user.
func (s *FeedService) ListFeed(ctx context.Context, viewerID string) ([]models.Post, error) {
	posts, err := s.Store.ListPosts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	for i := range posts {
		count, byViewer, err := s.Store.Likes(ctx, posts[i].ID, viewerID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		comments, err := s.Store.CommentCount(ctx, posts[i].ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
		}
		posts[i].Likes = count
		posts[i].LikedByCurrentUser = byViewer
		posts[i].CommentCount = comments
	}
	return posts, nil
}

// PostsByPath filters posts down to one path.
func (s *FeedService) PostsByPath(posts []models.Post, pathID string) []models.Post {
	var out []models.Post
	for _, p := range posts {
		if p.PathID == pathID {
			out = append(out, p)
		}
	}
	return out
}

// PostsByCountry groups posts by country id; posts without one land under
// "unknown".
func (s *FeedService) PostsByCountry(posts []models.Post) map[string][]models.Post {
	grouped := make(map[string][]models.Post)
	for _, p := range posts {
		c := p.CountryID
		if c == "" {
			c = "unknown"
		}
		grouped[c] = append(grouped[c], p)
	}
	return grouped
}

// ToggleLike flips the viewer's like on a post.
func (s *FeedService) ToggleLike(ctx context.Context, postID, userID string) error {
	if err := s.Store.ToggleLike(ctx, postID, userID); err != nil {
		return fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return nil
}

// AddComment appends a comment to a post and returns it.
func (s *FeedService) AddComment(ctx context.Context, postID, userID, body, parentCommentID string) (models.Comment, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return models.Comment{}, fmt.Errorf("comment body is empty")
	}
	c := models.Comment{
		ID:              "cmt-" + uuid.NewString(),
		PostID:          postID,
		UserID:          userID,
		Body:            body,
		ParentCommentID: parentCommentID,
		CreatedAt:       time.Now(),
	}
	if err := s.Store.AddComment(ctx, c); err != nil {
		return models.Comment{}, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return c, nil
}

// ListComments returns a post's comments oldest-first.
func (s *FeedService) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	comments, err := s.Store.ListComments(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorageUnavailable, err)
	}
	return comments, nil
}
