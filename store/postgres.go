// store/postgres.go
package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"flavorquest-system/models"
)

// Postgres is the production backend over GORM.
type Postgres struct {
	DB *gorm.DB
}

// NewPostgres wraps an opened GORM handle.
func NewPostgres(db *gorm.DB) *Postgres {
	return &Postgres{DB: db}
}

// Migrate creates/updates the tables this store owns.
func (s *Postgres) Migrate() error {
	return s.DB.AutoMigrate(
		&models.AppUser{},
		&models.UserProgress{},
		&models.Completion{},
		&models.Post{},
		&models.Like{},
		&models.Comment{},
	)
}

func (s *Postgres) GetProgress(ctx context.Context, userID, pathID string) (models.UserProgress, error) {
	var p models.UserProgress
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND path_id = ?", userID, pathID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.UserProgress{}, ErrNotFound
	}
	if err != nil {
		return models.UserProgress{}, fmt.Errorf("get progress: %w", err)
	}
	return p, nil
}

func (s *Postgres) SaveProgress(ctx context.Context, p models.UserProgress) error {
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "path_id"}},
			UpdateAll: true,
		}).
		Create(&p).Error
	if err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}

func (s *Postgres) AddCompletion(ctx context.Context, c models.Completion) error {
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return fmt.Errorf("add completion: %w", err)
	}
	return nil
}

func (s *Postgres) ListCompletionsByUser(ctx context.Context, userID string) ([]models.Completion, error) {
	var out []models.Completion
	err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list completions: %w", err)
	}
	return out, nil
}

func (s *Postgres) AddPost(ctx context.Context, p models.Post) error {
	if err := s.DB.WithContext(ctx).Create(&p).Error; err != nil {
		return fmt.Errorf("add post: %w", err)
	}
	return nil
}

func (s *Postgres) ListPosts(ctx context.Context) ([]models.Post, error) {
	var out []models.Post
	err := s.DB.WithContext(ctx).
		Order("created_at DESC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return out, nil
}

func (s *Postgres) ToggleLike(ctx context.Context, postID, userID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var like models.Like
		err := tx.Where("post_id = ? AND user_id = ?", postID, userID).First(&like).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&models.Like{PostID: postID, UserID: userID}).Error
		case err != nil:
			return err
		default:
			return tx.Delete(&like).Error
		}
	})
}

func (s *Postgres) Likes(ctx context.Context, postID, viewerID string) (int, bool, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Like{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, false, fmt.Errorf("count likes: %w", err)
	}
	var byViewer int64
	if viewerID != "" {
		if err := s.DB.WithContext(ctx).Model(&models.Like{}).
			Where("post_id = ? AND user_id = ?", postID, viewerID).
			Count(&byViewer).Error; err != nil {
			return 0, false, fmt.Errorf("count viewer like: %w", err)
		}
	}
	return int(count), byViewer > 0, nil
}

func (s *Postgres) AddComment(ctx context.Context, c models.Comment) error {
	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		return fmt.Errorf("add comment: %w", err)
	}
	return nil
}

func (s *Postgres) ListComments(ctx context.Context, postID string) ([]models.Comment, error) {
	var out []models.Comment
	err := s.DB.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return out, nil
}

func (s *Postgres) CommentCount(ctx context.Context, postID string) (int, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Comment{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count comments: %w", err)
	}
	return int(count), nil
}

func (s *Postgres) GetUser(ctx context.Context, userID string) (models.AppUser, error) {
	var u models.AppUser
	err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AppUser{}, ErrNotFound
	}
	if err != nil {
		return models.AppUser{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (s *Postgres) UpsertUser(ctx context.Context, u models.AppUser) error {
	err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(&u).Error
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}

func (s *Postgres) ListUsers(ctx context.Context) ([]models.AppUser, error) {
	var out []models.AppUser
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return out, nil
}
