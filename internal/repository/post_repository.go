package repository

import (
	"context"

	"gorm.io/gorm"

	"campushub/internal/model"
)

// PostRepository defines post persistence operations.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	FindByID(ctx context.Context, id uint) (*model.Post, error)
	List(ctx context.Context, page Page) ([]model.Post, error)
	Update(ctx context.Context, post *model.Post, columns []string) error
	Delete(ctx context.Context, id uint) (bool, error)
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Omit("Author").Create(post).Error
}

// FindByID finds a post by ID with its author loaded.
func (r *postRepository) FindByID(ctx context.Context, id uint) (*model.Post, error) {
	var post model.Post
	if err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns the feed, newest first.
func (r *postRepository) List(ctx context.Context, page Page) ([]model.Post, error) {
	var posts []model.Post
	if err := r.db.WithContext(ctx).Preload("Author").Scopes(page.scope).
		Order("created_at DESC").Order("id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

// Update writes only the given columns of post.
func (r *postRepository) Update(ctx context.Context, post *model.Post, columns []string) error {
	if len(columns) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Model(post).Select(withUpdatedAt(columns)).Updates(post).Error
}

// Delete removes the post and, through the foreign key, its comments.
func (r *postRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Post{}, id)
	return res.RowsAffected > 0, res.Error
}
