package services

import (
	"testing"

	"geugeu/internal/models"
	"geugeu/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentFixture struct {
	service *CommentService
	post    *models.Post
	drawing *models.Drawing
	author  *models.User
}

func newCommentFixture(t *testing.T) *commentFixture {
	t.Helper()
	postRepo := repositories.NewMockPostRepository()
	drawingRepo := repositories.NewMockDrawingRepository()
	author := &models.User{ID: 1, Code: "author-code", Nickname: "author"}

	post := &models.Post{AuthorID: author.ID, Title: "T", Content: "C", Author: *author}
	require.NoError(t, postRepo.Create(post))

	drawing := &models.Drawing{PostID: post.ID, AuthorID: author.ID, Content: "D", Post: *post, Author: *author}
	require.NoError(t, drawingRepo.Create(drawing))

	return &commentFixture{
		service: NewCommentService(repositories.NewMockCommentRepository(), postRepo, drawingRepo, nil),
		post:    post,
		drawing: drawing,
		author:  author,
	}
}

func TestCreateAndListPostComments(t *testing.T) {
	fx := newCommentFixture(t)
	commenter := &models.User{ID: 2, Code: "commenter-code"}

	first, err := fx.service.CreatePostComment(commenter, fx.post.Code, "first", "")
	require.NoError(t, err)
	assert.NotEmpty(t, first.Code)

	_, err = fx.service.CreatePostComment(commenter, fx.post.Code, "second", "")
	require.NoError(t, err)

	comments, err := fx.service.GetPostComments(fx.post.Code)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	// Oldest first.
	assert.Equal(t, "first", comments[0].Content)
}

func TestCreateCommentPublishesActivity(t *testing.T) {
	fx := newCommentFixture(t)
	publisher := &recordingPublisher{}
	fx.service.publisher = publisher
	commenter := &models.User{ID: 2, Code: "commenter-code"}

	comment, err := fx.service.CreatePostComment(commenter, fx.post.Code, "hello", "")
	require.NoError(t, err)

	require.Equal(t, []string{"comment.created"}, publisher.events)
	payload := publisher.payloads[0]
	assert.Equal(t, comment.Code, payload["commentCode"])
	assert.Equal(t, fx.post.Code, payload["postCode"])
}

func TestCreateReplyNotListedTopLevel(t *testing.T) {
	fx := newCommentFixture(t)
	commenter := &models.User{ID: 2}

	parent, err := fx.service.CreatePostComment(commenter, fx.post.Code, "parent", "")
	require.NoError(t, err)

	reply, err := fx.service.CreatePostComment(commenter, fx.post.Code, "reply", parent.Code)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)

	comments, err := fx.service.GetPostComments(fx.post.Code)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, "parent", comments[0].Content)
}

func TestCreateCommentInvalidParent(t *testing.T) {
	fx := newCommentFixture(t)
	commenter := &models.User{ID: 2}

	_, err := fx.service.CreatePostComment(commenter, fx.post.Code, "reply", "no-such-parent")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateCommentDeletedParentInvalid(t *testing.T) {
	fx := newCommentFixture(t)
	commenter := &models.User{ID: 2}

	parent, err := fx.service.CreatePostComment(commenter, fx.post.Code, "parent", "")
	require.NoError(t, err)
	require.NoError(t, fx.service.DeletePostComment(commenter, fx.post.Code, parent.Code))

	_, err = fx.service.CreatePostComment(commenter, fx.post.Code, "reply", parent.Code)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateCommentMissingPost(t *testing.T) {
	fx := newCommentFixture(t)

	_, err := fx.service.CreatePostComment(&models.User{ID: 2}, "missing", "hello", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateCommentOwnership(t *testing.T) {
	fx := newCommentFixture(t)
	commenter := &models.User{ID: 2}
	stranger := &models.User{ID: 3}
	admin := &models.User{ID: 4, IsAdmin: true}

	comment, err := fx.service.CreatePostComment(commenter, fx.post.Code, "before", "")
	require.NoError(t, err)

	_, err = fx.service.UpdatePostComment(stranger, fx.post.Code, comment.Code, "after")
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := fx.service.UpdatePostComment(commenter, fx.post.Code, comment.Code, "after")
	require.NoError(t, err)
	assert.Equal(t, "after", updated.Content)

	_, err = fx.service.UpdatePostComment(admin, fx.post.Code, comment.Code, "moderated")
	assert.NoError(t, err)
}

func TestDeleteCommentMissingBeatsForbidden(t *testing.T) {
	fx := newCommentFixture(t)

	err := fx.service.DeletePostComment(&models.User{ID: 3}, fx.post.Code, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDrawingComments(t *testing.T) {
	fx := newCommentFixture(t)
	commenter := &models.User{ID: 2}

	comment, err := fx.service.CreateDrawingComment(commenter, fx.drawing.Code, "nice lines", "")
	require.NoError(t, err)
	require.NotNil(t, comment.DrawingID)
	assert.Nil(t, comment.PostID)

	comments, err := fx.service.GetDrawingComments(fx.drawing.Code)
	require.NoError(t, err)
	require.Len(t, comments, 1)

	fetched, err := fx.service.GetDrawingComment(fx.drawing.Code, comment.Code)
	require.NoError(t, err)
	assert.Equal(t, comment.Code, fetched.Code)

	require.NoError(t, fx.service.DeleteDrawingComment(commenter, fx.drawing.Code, comment.Code))

	comments, err = fx.service.GetDrawingComments(fx.drawing.Code)
	require.NoError(t, err)
	assert.Empty(t, comments)
}

func TestDrawingCommentMissingDrawing(t *testing.T) {
	fx := newCommentFixture(t)

	_, err := fx.service.CreateDrawingComment(&models.User{ID: 2}, "missing", "x", "")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = fx.service.GetDrawingComments("missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetPostComment(t *testing.T) {
	fx := newCommentFixture(t)
	commenter := &models.User{ID: 2}

	comment, err := fx.service.CreatePostComment(commenter, fx.post.Code, "still here", "")
	require.NoError(t, err)

	fetched, err := fx.service.GetPostComment(fx.post.Code, comment.Code)
	require.NoError(t, err)
	assert.Equal(t, "still here", fetched.Content)

	_, err = fx.service.GetPostComment(fx.post.Code, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
