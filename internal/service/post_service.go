package service

import (
	"context"
	"fmt"

	"campushub/internal/auth"
	apperrors "campushub/internal/errors"
	"campushub/internal/model"
	"campushub/internal/repository"
)

// NewPost is the creation payload for a post.
type NewPost struct {
	Title     string
	Content   string
	ImageURLs string
}

// PostService handles posts and their comment threads.
type PostService interface {
	CreatePost(ctx context.Context, author *model.User, in NewPost) (*model.Post, error)
	GetPost(ctx context.Context, id uint) (*model.Post, error)
	ListPosts(ctx context.Context, page repository.Page) ([]model.Post, error)
	UpdatePost(ctx context.Context, actor *model.User, id uint, p model.PostPatch) (*model.Post, error)
	DeletePost(ctx context.Context, actor *model.User, id uint) error

	AddComment(ctx context.Context, author *model.User, postID uint, content string) (*model.Comment, error)
	ListComments(ctx context.Context, postID uint, page repository.Page) ([]model.Comment, error)
	DeleteComment(ctx context.Context, actor *model.User, postID, commentID uint) error
}

type postService struct {
	posts    repository.PostRepository
	comments repository.CommentRepository
}

// NewPostService creates a new post service.
func NewPostService(posts repository.PostRepository, comments repository.CommentRepository) PostService {
	return &postService{
		posts:    posts,
		comments: comments,
	}
}

// CreatePost binds the post to author regardless of the payload.
func (s *postService) CreatePost(ctx context.Context, author *model.User, in NewPost) (*model.Post, error) {
	if err := requireText("title", in.Title); err != nil {
		return nil, err
	}
	if err := requireText("content", in.Content); err != nil {
		return nil, err
	}

	post := &model.Post{
		AuthorID:  author.ID,
		Title:     in.Title,
		Content:   in.Content,
		ImageURLs: in.ImageURLs,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = author
	return post, nil
}

func (s *postService) GetPost(ctx context.Context, id uint) (*model.Post, error) {
	post, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, apperrors.ErrPostNotFound, "get post")
	}
	return post, nil
}

func (s *postService) ListPosts(ctx context.Context, page repository.Page) ([]model.Post, error) {
	posts, err := s.posts.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return posts, nil
}

// UpdatePost merges the patch onto the author's own post.
func (s *postService) UpdatePost(ctx context.Context, actor *model.User, id uint, p model.PostPatch) (*model.Post, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.AuthorizeResource(actor, post); err != nil {
		return nil, err
	}

	if err := s.posts.Update(ctx, post, p.Apply(post)); err != nil {
		return nil, fmt.Errorf("update post: %w", err)
	}
	return post, nil
}

func (s *postService) DeletePost(ctx context.Context, actor *model.User, id uint) error {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.AuthorizeResource(actor, post); err != nil {
		return err
	}

	deleted, err := s.posts.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if !deleted {
		return apperrors.ErrPostNotFound
	}
	return nil
}

// AddComment replies to an existing post as author.
func (s *postService) AddComment(ctx context.Context, author *model.User, postID uint, content string) (*model.Comment, error) {
	if err := requireText("content", content); err != nil {
		return nil, err
	}
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: author.ID,
		Content:  content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = author
	return comment, nil
}

func (s *postService) ListComments(ctx context.Context, postID uint, page repository.Page) ([]model.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	comments, err := s.comments.ListByPost(ctx, postID, page)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

// DeleteComment removes the actor's own comment from postID's thread.
func (s *postService) DeleteComment(ctx context.Context, actor *model.User, postID, commentID uint) error {
	comment, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return lookupError(err, apperrors.ErrCommentNotFound, "get comment")
	}
	if comment.PostID != postID {
		return apperrors.ErrCommentNotFound
	}
	if err := auth.AuthorizeResource(actor, comment); err != nil {
		return err
	}

	deleted, err := s.comments.Delete(ctx, comment)
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if !deleted {
		return apperrors.ErrCommentNotFound
	}
	return nil
}
