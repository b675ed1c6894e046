package service

import (
	"context"
	"errors"
	"fmt"

	"balancehub/internal/dto"
	"balancehub/internal/models"
	"balancehub/internal/repository"

	"gorm.io/gorm"
)

type LikeService interface {
	// ToggleGameLike flips the user's like on a game and returns the
	// resulting state with a fresh count.
	ToggleGameLike(ctx context.Context, userID, gameID int64) (*dto.LikeResponse, error)
	ToggleCommentLike(ctx context.Context, userID, commentID int64) (*dto.LikeResponse, error)
	GameLikeStatus(ctx context.Context, userID, gameID int64) (*dto.LikeResponse, error)
	CommentLikeStatus(ctx context.Context, userID, commentID int64) (*dto.LikeResponse, error)
}

type likeService struct {
	likeRepo    repository.LikeRepository
	gameRepo    repository.GameRepository
	commentRepo repository.CommentRepository
}

func NewLikeService(
	likeRepo repository.LikeRepository,
	gameRepo repository.GameRepository,
	commentRepo repository.CommentRepository,
) LikeService {
	return &likeService{
		likeRepo:    likeRepo,
		gameRepo:    gameRepo,
		commentRepo: commentRepo,
	}
}

func (s *likeService) ToggleGameLike(ctx context.Context, userID, gameID int64) (*dto.LikeResponse, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return nil, err
	}

	liked, err := s.toggle(ctx,
		func() (*models.Like, error) { return s.likeRepo.GetByUserAndGame(ctx, userID, gameID) },
		func() *models.Like { return models.NewGameLike(userID, gameID) },
	)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Liked: liked, LikeCount: count}, nil
}

func (s *likeService) ToggleCommentLike(ctx context.Context, userID, commentID int64) (*dto.LikeResponse, error) {
	if _, err := s.commentRepo.GetByID(ctx, commentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: comment %d", ErrNotFound, commentID)
		}
		return nil, err
	}

	liked, err := s.toggle(ctx,
		func() (*models.Like, error) { return s.likeRepo.GetByUserAndComment(ctx, userID, commentID) },
		func() *models.Like { return models.NewCommentLike(userID, commentID) },
	)
	if err != nil {
		return nil, err
	}

	count, err := s.likeRepo.CountByCommentID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Liked: liked, LikeCount: count}, nil
}

// toggle removes an existing like or inserts a new one, reporting the
// final liked state. An insert that trips the unique constraint lost a
// race against an identical toggle; the like exists either way, so it
// reports liked.
func (s *likeService) toggle(
	ctx context.Context,
	find func() (*models.Like, error),
	build func() *models.Like,
) (bool, error) {
	existing, err := find()
	switch {
	case err == nil:
		if _, err := s.likeRepo.Delete(ctx, existing.ID); err != nil {
			return false, err
		}
		return false, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		if err := s.likeRepo.Create(ctx, build()); err != nil {
			if repository.IsUniqueViolation(err) {
				return true, nil
			}
			return false, err
		}
		return true, nil

	default:
		return false, err
	}
}

func (s *likeService) GameLikeStatus(ctx context.Context, userID, gameID int64) (*dto.LikeResponse, error) {
	liked := true
	if _, err := s.likeRepo.GetByUserAndGame(ctx, userID, gameID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		liked = false
	}

	count, err := s.likeRepo.CountByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Liked: liked, LikeCount: count}, nil
}

func (s *likeService) CommentLikeStatus(ctx context.Context, userID, commentID int64) (*dto.LikeResponse, error) {
	liked := true
	if _, err := s.likeRepo.GetByUserAndComment(ctx, userID, commentID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		liked = false
	}

	count, err := s.likeRepo.CountByCommentID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &dto.LikeResponse{Liked: liked, LikeCount: count}, nil
}
