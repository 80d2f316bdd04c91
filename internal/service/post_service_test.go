package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "campushub/internal/errors"
	"campushub/internal/model"
	"campushub/internal/patch"
	"campushub/internal/repository"
)

func TestPostService_CreatePost(t *testing.T) {
	author := &model.User{ID: 5, Username: "alice"}

	tests := []struct {
		name          string
		in            NewPost
		setupMock     func(*MockPostRepository)
		expectedError error
	}{
		{
			name: "successful create",
			in:   NewPost{Title: "hi", Content: "there"},
			setupMock: func(m *MockPostRepository) {
				m.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Post) bool {
					return p.AuthorID == 5 && p.Title == "hi" && p.Content == "there"
				})).Run(func(args mock.Arguments) {
					args.Get(1).(*model.Post).ID = 10
				}).Return(nil)
			},
		},
		{
			name:          "missing title",
			in:            NewPost{Content: "there"},
			setupMock:     func(m *MockPostRepository) {},
			expectedError: apperrors.ErrInvalidInput,
		},
		{
			name:          "missing content",
			in:            NewPost{Title: "hi"},
			setupMock:     func(m *MockPostRepository) {},
			expectedError: apperrors.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(MockPostRepository)
			tt.setupMock(posts)

			post, err := NewPostService(posts, new(MockCommentRepository)).CreatePost(context.Background(), author, tt.in)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
			} else {
				require.NoError(t, err)
				assert.Equal(t, uint(10), post.ID)
				assert.Same(t, author, post.Author)
			}
			posts.AssertExpectations(t)
		})
	}
}

func TestPostService_UpdatePost(t *testing.T) {
	stored := func() *model.Post {
		return &model.Post{ID: 10, AuthorID: 5, Title: "hi", Content: "there"}
	}

	tests := []struct {
		name            string
		actor           *model.User
		postID          uint
		patch           model.PostPatch
		setupMock       func(*MockPostRepository)
		expectedError   error
		expectedTitle   string
		expectedContent string
	}{
		{
			name:   "author patches content only",
			actor:  &model.User{ID: 5},
			postID: 10,
			patch:  model.PostPatch{Content: patch.Of("there2")},
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(stored(), nil)
				m.On("Update", mock.Anything, mock.Anything, []string{"content"}).Return(nil)
			},
			expectedTitle:   "hi",
			expectedContent: "there2",
		},
		{
			name:   "other user is forbidden",
			actor:  &model.User{ID: 7},
			postID: 10,
			patch:  model.PostPatch{Title: patch.Of("x")},
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(stored(), nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:   "missing post",
			actor:  &model.User{ID: 5},
			postID: 11,
			patch:  model.PostPatch{Title: patch.Of("x")},
			setupMock: func(m *MockPostRepository) {
				m.On("FindByID", mock.Anything, uint(11)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrPostNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			posts := new(MockPostRepository)
			tt.setupMock(posts)

			post, err := NewPostService(posts, new(MockCommentRepository)).UpdatePost(context.Background(), tt.actor, tt.postID, tt.patch)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
				assert.Nil(t, post)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expectedTitle, post.Title)
				assert.Equal(t, tt.expectedContent, post.Content)
			}
			posts.AssertExpectations(t)
		})
	}
}

func TestPostService_DeletePost(t *testing.T) {
	posts := new(MockPostRepository)
	posts.On("FindByID", mock.Anything, uint(10)).Return(&model.Post{ID: 10, AuthorID: 5}, nil)
	posts.On("Delete", mock.Anything, uint(10)).Return(true, nil).Once()
	svc := NewPostService(posts, new(MockCommentRepository))

	err := svc.DeletePost(context.Background(), &model.User{ID: 7}, 10)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.DeletePost(context.Background(), &model.User{ID: 5}, 10))
	posts.AssertExpectations(t)
}

func TestPostService_AddComment(t *testing.T) {
	posts := new(MockPostRepository)
	comments := new(MockCommentRepository)
	posts.On("FindByID", mock.Anything, uint(10)).Return(&model.Post{ID: 10, AuthorID: 5}, nil)
	posts.On("FindByID", mock.Anything, uint(11)).Return(nil, gorm.ErrRecordNotFound)
	comments.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Comment) bool {
		return c.PostID == 10 && c.AuthorID == 7 && c.Content == "nice"
	})).Return(nil)
	svc := NewPostService(posts, comments)
	bob := &model.User{ID: 7}

	comment, err := svc.AddComment(context.Background(), bob, 10, "nice")
	require.NoError(t, err)
	assert.Same(t, bob, comment.Author)

	_, err = svc.AddComment(context.Background(), bob, 11, "nice")
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)

	_, err = svc.AddComment(context.Background(), bob, 10, "")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)

	comments.AssertExpectations(t)
}

func TestPostService_ListComments(t *testing.T) {
	posts := new(MockPostRepository)
	comments := new(MockCommentRepository)
	page := repository.Page{Limit: 100}
	posts.On("FindByID", mock.Anything, uint(10)).Return(&model.Post{ID: 10}, nil)
	posts.On("FindByID", mock.Anything, uint(11)).Return(nil, gorm.ErrRecordNotFound)
	comments.On("ListByPost", mock.Anything, uint(10), page).Return([]model.Comment{{ID: 1}, {ID: 2}}, nil)
	svc := NewPostService(posts, comments)

	list, err := svc.ListComments(context.Background(), 10, page)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	_, err = svc.ListComments(context.Background(), 11, page)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostService_DeleteComment(t *testing.T) {
	comment := &model.Comment{ID: 3, PostID: 10, AuthorID: 7}

	tests := []struct {
		name          string
		actor         *model.User
		postID        uint
		setupMock     func(*MockCommentRepository)
		expectedError error
	}{
		{
			name:   "author deletes",
			actor:  &model.User{ID: 7},
			postID: 10,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(comment, nil)
				m.On("Delete", mock.Anything, comment).Return(true, nil)
			},
		},
		{
			name:   "post author cannot delete someone else's comment",
			actor:  &model.User{ID: 5},
			postID: 10,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(comment, nil)
			},
			expectedError: apperrors.ErrForbidden,
		},
		{
			name:   "comment belongs to another post",
			actor:  &model.User{ID: 7},
			postID: 12,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(comment, nil)
			},
			expectedError: apperrors.ErrCommentNotFound,
		},
		{
			name:   "missing comment",
			actor:  &model.User{ID: 7},
			postID: 10,
			setupMock: func(m *MockCommentRepository) {
				m.On("FindByID", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: apperrors.ErrCommentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			comments := new(MockCommentRepository)
			tt.setupMock(comments)

			err := NewPostService(new(MockPostRepository), comments).DeleteComment(context.Background(), tt.actor, tt.postID, 3)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
			}
			comments.AssertExpectations(t)
		})
	}
}
