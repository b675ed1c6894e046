package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"balancehub/internal/dto"
	"balancehub/internal/models"
	"balancehub/internal/repository"

	"gorm.io/gorm"
)

const maxCommentLen = 1000

type CommentService interface {
	Create(ctx context.Context, userID, gameID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error)
	Update(ctx context.Context, commentID, userID int64, req dto.UpdateCommentRequest) (*dto.CommentResponse, error)
	Delete(ctx context.Context, commentID, userID int64, isAdmin bool) error
	Get(ctx context.Context, commentID int64, viewerID *int64) (*dto.CommentResponse, error)
	// ListForGame pages top-level comments newest first, each carrying
	// its replies oldest first. Replies and like decorations for the
	// whole page are loaded in a fixed number of queries.
	ListForGame(ctx context.Context, gameID int64, page, pageSize int, viewerID *int64) (*dto.Page[dto.CommentResponse], error)
	ListReplies(ctx context.Context, parentID int64, viewerID *int64) ([]dto.CommentResponse, error)
}

type commentService struct {
	commentRepo repository.CommentRepository
	gameRepo    repository.GameRepository
	likeRepo    repository.LikeRepository
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	gameRepo repository.GameRepository,
	likeRepo repository.LikeRepository,
) CommentService {
	return &commentService{
		commentRepo: commentRepo,
		gameRepo:    gameRepo,
		likeRepo:    likeRepo,
	}
}

func (s *commentService) Create(ctx context.Context, userID, gameID int64, req dto.CreateCommentRequest) (*dto.CommentResponse, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrInvalidInput)
	}
	if len(content) > maxCommentLen {
		return nil, fmt.Errorf("%w: comment must not exceed %d characters", ErrInvalidInput, maxCommentLen)
	}

	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return nil, err
	}

	comment := &models.Comment{
		GameID:   gameID,
		AuthorID: userID,
		Content:  content,
		Depth:    models.DepthTopLevel,
	}

	if req.ParentCommentID != nil {
		parent, err := s.commentRepo.GetByID(ctx, *req.ParentCommentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: parent comment %d", ErrNotFound, *req.ParentCommentID)
			}
			return nil, err
		}
		// Threads are exactly two levels deep. Replying to a reply is
		// rejected rather than silently reparented onto the top-level
		// ancestor.
		if parent.IsReply() {
			return nil, fmt.Errorf("%w: cannot reply to a reply", ErrInvalidInput)
		}
		if parent.GameID != gameID {
			return nil, fmt.Errorf("%w: parent comment belongs to a different game", ErrInvalidInput)
		}
		comment.ParentCommentID = req.ParentCommentID
		comment.Depth = models.DepthReply
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	// Reload with author data.
	comment, err := s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment, 0, false), nil
}

func (s *commentService) Update(ctx context.Context, commentID, userID int64, req dto.UpdateCommentRequest) (*dto.CommentResponse, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if comment.AuthorID != userID {
		return nil, fmt.Errorf("%w: comment %d is not owned by user %d", ErrPermissionDenied, commentID, userID)
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: comment content is required", ErrInvalidInput)
	}
	if len(content) > maxCommentLen {
		return nil, fmt.Errorf("%w: comment must not exceed %d characters", ErrInvalidInput, maxCommentLen)
	}
	comment.Content = content

	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	likeCount, err := s.likeRepo.CountByCommentID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	liked, err := s.likeRepo.GetByUserAndComment(ctx, userID, commentID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment, likeCount, liked != nil), nil
}

func (s *commentService) Delete(ctx context.Context, commentID, userID int64, isAdmin bool) error {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return err
	}

	if comment.AuthorID != userID && !isAdmin {
		return fmt.Errorf("%w: comment %d is not owned by user %d", ErrPermissionDenied, commentID, userID)
	}

	return s.commentRepo.Delete(ctx, commentID)
}

func (s *commentService) Get(ctx context.Context, commentID int64, viewerID *int64) (*dto.CommentResponse, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	likeCounts, likedIDs, err := s.likeDecorations(ctx, []int64{commentID}, viewerID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToCommentResponse(comment, likeCounts[commentID], likedIDs[commentID]), nil
}

func (s *commentService) ListForGame(ctx context.Context, gameID int64, page, pageSize int, viewerID *int64) (*dto.Page[dto.CommentResponse], error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return nil, err
	}

	parents, total, err := s.commentRepo.ListTopLevel(ctx, gameID, page, pageSize)
	if err != nil {
		return nil, err
	}
	if len(parents) == 0 {
		return dto.NewPage([]dto.CommentResponse{}, total, page, pageSize), nil
	}

	parentIDs := make([]int64, 0, len(parents))
	for i := range parents {
		parentIDs = append(parentIDs, parents[i].ID)
	}

	// One query fetches every reply on the page, already ordered by
	// parent then age.
	replies, err := s.commentRepo.ListByParentIDs(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	repliesByParent := make(map[int64][]models.Comment, len(parents))
	allIDs := append([]int64{}, parentIDs...)
	for i := range replies {
		parentID := *replies[i].ParentCommentID
		repliesByParent[parentID] = append(repliesByParent[parentID], replies[i])
		allIDs = append(allIDs, replies[i].ID)
	}

	likeCounts, likedIDs, err := s.likeDecorations(ctx, allIDs, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(parents))
	for i := range parents {
		parent := &parents[i]
		resp := dto.FromModelToCommentResponse(parent, likeCounts[parent.ID], likedIDs[parent.ID])

		children := repliesByParent[parent.ID]
		if len(children) > 0 {
			resp.Replies = make([]dto.CommentResponse, 0, len(children))
			for j := range children {
				child := &children[j]
				resp.Replies = append(resp.Replies, *dto.FromModelToCommentResponse(child, likeCounts[child.ID], likedIDs[child.ID]))
			}
		}
		responses = append(responses, *resp)
	}

	return dto.NewPage(responses, total, page, pageSize), nil
}

func (s *commentService) ListReplies(ctx context.Context, parentID int64, viewerID *int64) ([]dto.CommentResponse, error) {
	parent, err := s.getComment(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if parent.IsReply() {
		return nil, fmt.Errorf("%w: comment %d is not a top-level comment", ErrInvalidInput, parentID)
	}

	replies, err := s.commentRepo.ListReplies(ctx, parentID)
	if err != nil {
		return nil, err
	}
	if len(replies) == 0 {
		return []dto.CommentResponse{}, nil
	}

	ids := make([]int64, 0, len(replies))
	for i := range replies {
		ids = append(ids, replies[i].ID)
	}

	likeCounts, likedIDs, err := s.likeDecorations(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.CommentResponse, 0, len(replies))
	for i := range replies {
		responses = append(responses, *dto.FromModelToCommentResponse(&replies[i], likeCounts[replies[i].ID], likedIDs[replies[i].ID]))
	}
	return responses, nil
}

func (s *commentService) getComment(ctx context.Context, commentID int64) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, err
	}
	return comment, nil
}

func (s *commentService) likeDecorations(ctx context.Context, commentIDs []int64, viewerID *int64) (map[int64]int64, map[int64]bool, error) {
	likeCounts, err := s.likeRepo.CountByCommentIDs(ctx, commentIDs)
	if err != nil {
		return nil, nil, err
	}

	likedIDs := map[int64]bool{}
	if viewerID != nil {
		likedIDs, err = s.likeRepo.LikedCommentIDs(ctx, *viewerID, commentIDs)
		if err != nil {
			return nil, nil, err
		}
	}
	return likeCounts, likedIDs, nil
}
