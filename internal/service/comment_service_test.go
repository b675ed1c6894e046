package service

import (
	"context"
	"strings"
	"testing"

	"balancehub/internal/dto"
	"balancehub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newCommentServiceForTest() (CommentService, *MockCommentRepository, *MockGameRepository, *MockLikeRepository) {
	commentRepo := new(MockCommentRepository)
	gameRepo := new(MockGameRepository)
	likeRepo := new(MockLikeRepository)
	return NewCommentService(commentRepo, gameRepo, likeRepo), commentRepo, gameRepo, likeRepo
}

func parentID(id int64) *int64 { return &id }

func TestCreateComment_TopLevel(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentServiceForTest()
	ctx := context.Background()

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	commentRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Comment) bool {
		return c.GameID == 10 && c.AuthorID == 1 && c.Depth == models.DepthTopLevel && c.ParentCommentID == nil
	})).Return(nil)
	commentRepo.On("GetByID", ctx, mock.Anything).Return(&models.Comment{
		GameID:   10,
		AuthorID: 1,
		Content:  "nice dilemma",
		Author:   models.User{Username: "alice"},
	}, nil)

	resp, err := svc.Create(ctx, 1, 10, dto.CreateCommentRequest{Content: "nice dilemma"})

	assert.NoError(t, err)
	assert.Equal(t, "nice dilemma", resp.Content)
	assert.Equal(t, "alice", resp.AuthorUsername)
	commentRepo.AssertExpectations(t)
}

func TestCreateComment_ReplyGetsDepthOne(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentServiceForTest()
	ctx := context.Background()

	parent := &models.Comment{ID: 5, GameID: 10, Depth: models.DepthTopLevel}
	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	commentRepo.On("GetByID", ctx, int64(5)).Return(parent, nil).Once()
	commentRepo.On("Create", ctx, mock.MatchedBy(func(c *models.Comment) bool {
		return c.Depth == models.DepthReply && c.ParentCommentID != nil && *c.ParentCommentID == 5
	})).Return(nil)
	commentRepo.On("GetByID", ctx, mock.Anything).Return(&models.Comment{
		GameID: 10, Depth: models.DepthReply, Content: "agreed",
	}, nil)

	_, err := svc.Create(ctx, 1, 10, dto.CreateCommentRequest{Content: "agreed", ParentCommentID: parentID(5)})

	assert.NoError(t, err)
	commentRepo.AssertExpectations(t)
}

func TestCreateComment_ReplyToReplyRejected(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentServiceForTest()
	ctx := context.Background()

	reply := &models.Comment{ID: 6, GameID: 10, Depth: models.DepthReply, ParentCommentID: parentID(5)}
	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	commentRepo.On("GetByID", ctx, int64(6)).Return(reply, nil)

	_, err := svc.Create(ctx, 1, 10, dto.CreateCommentRequest{Content: "nested", ParentCommentID: parentID(6)})

	assert.ErrorIs(t, err, ErrInvalidInput)
	commentRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateComment_ParentFromOtherGameRejected(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentServiceForTest()
	ctx := context.Background()

	parent := &models.Comment{ID: 5, GameID: 99, Depth: models.DepthTopLevel}
	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	commentRepo.On("GetByID", ctx, int64(5)).Return(parent, nil)

	_, err := svc.Create(ctx, 1, 10, dto.CreateCommentRequest{Content: "hello", ParentCommentID: parentID(5)})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreateComment_ContentValidation(t *testing.T) {
	svc, _, gameRepo, _ := newCommentServiceForTest()
	ctx := context.Background()
	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)

	_, err := svc.Create(ctx, 1, 10, dto.CreateCommentRequest{Content: "   "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.Create(ctx, 1, 10, dto.CreateCommentRequest{Content: strings.Repeat("x", 1001)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestListForGame_BatchesRepliesAndLikes(t *testing.T) {
	svc, commentRepo, gameRepo, likeRepo := newCommentServiceForTest()
	ctx := context.Background()

	parents := []models.Comment{
		{ID: 2, GameID: 10, Content: "newer"},
		{ID: 1, GameID: 10, Content: "older"},
	}
	replies := []models.Comment{
		{ID: 3, GameID: 10, Depth: models.DepthReply, ParentCommentID: parentID(1), Content: "first reply"},
		{ID: 4, GameID: 10, Depth: models.DepthReply, ParentCommentID: parentID(1), Content: "second reply"},
	}

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	commentRepo.On("ListTopLevel", ctx, int64(10), 1, 20).Return(parents, int64(2), nil)
	commentRepo.On("ListByParentIDs", ctx, []int64{2, 1}).Return(replies, nil)
	likeRepo.On("CountByCommentIDs", ctx, []int64{2, 1, 3, 4}).Return(map[int64]int64{1: 2, 3: 1}, nil)

	page, err := svc.ListForGame(ctx, 10, 1, 20, nil)

	assert.NoError(t, err)
	assert.Len(t, page.Data, 2)

	// newest-first parents, oldest-first replies under their parent
	assert.Equal(t, int64(2), page.Data[0].ID)
	assert.Empty(t, page.Data[0].Replies)
	assert.Equal(t, int64(1), page.Data[1].ID)
	assert.Len(t, page.Data[1].Replies, 2)
	assert.Equal(t, int64(3), page.Data[1].Replies[0].ID)
	assert.Equal(t, int64(4), page.Data[1].Replies[1].ID)

	// like decorations land on the right nodes
	assert.Equal(t, int64(2), page.Data[1].LikeCount)
	assert.Equal(t, int64(1), page.Data[1].Replies[0].LikeCount)

	// replies for the whole page came from a single query
	commentRepo.AssertNumberOfCalls(t, "ListByParentIDs", 1)
	commentRepo.AssertNotCalled(t, "ListReplies", mock.Anything, mock.Anything)
}

func TestListForGame_EmptyPage(t *testing.T) {
	svc, commentRepo, gameRepo, likeRepo := newCommentServiceForTest()
	ctx := context.Background()

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	commentRepo.On("ListTopLevel", ctx, int64(10), 1, 20).Return([]models.Comment{}, int64(0), nil)

	page, err := svc.ListForGame(ctx, 10, 1, 20, nil)

	assert.NoError(t, err)
	assert.Empty(t, page.Data)
	commentRepo.AssertNotCalled(t, "ListByParentIDs", mock.Anything, mock.Anything)
	likeRepo.AssertNotCalled(t, "CountByCommentIDs", mock.Anything, mock.Anything)
}

func TestListReplies_RejectsReplyParent(t *testing.T) {
	svc, commentRepo, _, _ := newCommentServiceForTest()
	ctx := context.Background()

	reply := &models.Comment{ID: 6, Depth: models.DepthReply, ParentCommentID: parentID(5)}
	commentRepo.On("GetByID", ctx, int64(6)).Return(reply, nil)

	_, err := svc.ListReplies(ctx, 6, nil)

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestUpdateComment_OnlyAuthor(t *testing.T) {
	svc, commentRepo, _, _ := newCommentServiceForTest()
	ctx := context.Background()

	comment := &models.Comment{ID: 5, AuthorID: 1, Content: "original"}
	commentRepo.On("GetByID", ctx, int64(5)).Return(comment, nil)

	_, err := svc.Update(ctx, 5, 2, dto.UpdateCommentRequest{Content: "edited"})

	assert.ErrorIs(t, err, ErrPermissionDenied)
	commentRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestDeleteComment_AdminOverride(t *testing.T) {
	svc, commentRepo, _, _ := newCommentServiceForTest()
	ctx := context.Background()

	comment := &models.Comment{ID: 5, AuthorID: 1}
	commentRepo.On("GetByID", ctx, int64(5)).Return(comment, nil)
	commentRepo.On("Delete", ctx, int64(5)).Return(nil)

	assert.ErrorIs(t, svc.Delete(ctx, 5, 2, false), ErrPermissionDenied)
	assert.NoError(t, svc.Delete(ctx, 5, 2, true))
}

func TestCreateComment_ParentNotFound(t *testing.T) {
	svc, commentRepo, gameRepo, _ := newCommentServiceForTest()
	ctx := context.Background()

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	commentRepo.On("GetByID", ctx, int64(77)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Create(ctx, 1, 10, dto.CreateCommentRequest{Content: "hi", ParentCommentID: parentID(77)})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetComment_DecoratesLikes(t *testing.T) {
	svc, commentRepo, _, likeRepo := newCommentServiceForTest()
	ctx := context.Background()

	comment := &models.Comment{ID: 5, GameID: 10, AuthorID: 2, Content: "solid pick", Author: models.User{Username: "bob"}}
	commentRepo.On("GetByID", ctx, int64(5)).Return(comment, nil)
	likeRepo.On("CountByCommentIDs", ctx, []int64{5}).Return(map[int64]int64{5: 3}, nil)
	likeRepo.On("LikedCommentIDs", ctx, int64(7), []int64{5}).Return(map[int64]bool{5: true}, nil)

	viewer := int64(7)
	resp, err := svc.Get(ctx, 5, &viewer)

	assert.NoError(t, err)
	assert.Equal(t, int64(5), resp.ID)
	assert.Equal(t, "bob", resp.AuthorUsername)
	assert.Equal(t, int64(3), resp.LikeCount)
	assert.True(t, resp.IsLiked)
}

func TestGetComment_AnonymousSkipsViewerQuery(t *testing.T) {
	svc, commentRepo, _, likeRepo := newCommentServiceForTest()
	ctx := context.Background()

	commentRepo.On("GetByID", ctx, int64(5)).Return(&models.Comment{ID: 5, GameID: 10}, nil)
	likeRepo.On("CountByCommentIDs", ctx, []int64{5}).Return(map[int64]int64{}, nil)

	resp, err := svc.Get(ctx, 5, nil)

	assert.NoError(t, err)
	assert.False(t, resp.IsLiked)
	likeRepo.AssertNotCalled(t, "LikedCommentIDs", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetComment_NotFound(t *testing.T) {
	svc, commentRepo, _, _ := newCommentServiceForTest()
	ctx := context.Background()

	commentRepo.On("GetByID", ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Get(ctx, 99, nil)

	assert.ErrorIs(t, err, ErrNotFound)
}
