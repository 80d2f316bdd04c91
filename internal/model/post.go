package model

import (
	"time"

	"campushub/internal/patch"
)

// Post is a social feed entry written by a user.
type Post struct {
	ID            uint      `json:"id" gorm:"primaryKey"`
	AuthorID      uint      `json:"author_id" gorm:"not null;index"`
	Title         string    `json:"title" gorm:"size:200;not null"`
	Content       string    `json:"content" gorm:"type:text;not null"`
	ImageURLs     string    `json:"image_urls" gorm:"size:1000"` // comma separated
	LikesCount    int       `json:"likes_count" gorm:"not null;default:0"`
	CommentsCount int       `json:"comments_count" gorm:"not null;default:0"`
	CreatedAt     time.Time `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relations
	Author   *User     `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
	Comments []Comment `json:"-" gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE"`
}

// OwnerID returns the author of the post.
func (p *Post) OwnerID() uint {
	return p.AuthorID
}

// PostPatch is the partial update payload for a post.
type PostPatch struct {
	Title     patch.Field[string] `json:"title" swaggertype:"string"`
	Content   patch.Field[string] `json:"content" swaggertype:"string"`
	ImageURLs patch.Field[string] `json:"image_urls" swaggertype:"string"`
}

// Apply merges the present fields onto post and returns the touched columns.
func (p PostPatch) Apply(post *Post) []string {
	return patch.Apply(
		patch.Set("title", &post.Title, p.Title),
		patch.Set("content", &post.Content, p.Content),
		patch.Set("image_urls", &post.ImageURLs, p.ImageURLs),
	)
}

// Comment is a reply on a post.
type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    uint      `json:"post_id" gorm:"not null;index"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`

	Author *User `json:"author,omitempty" gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// OwnerID returns the author of the comment.
func (c *Comment) OwnerID() uint {
	return c.AuthorID
}
