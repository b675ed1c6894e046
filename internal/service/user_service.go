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

const (
	maxNicknameLen = 50
	maxBioLen      = 500
)

type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error)
	UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error)
	// Stats returns the user's activity counters in three count
	// queries, no row materialization.
	Stats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error)
	// ListComments pages a user's comments newest first, with like
	// counts and the viewer's liked flags batched for the page.
	ListComments(ctx context.Context, authorID int64, page, pageSize int, viewerID *int64) (*dto.Page[dto.CommentResponse], error)
	// DeleteAccount removes the user. Games, comments and votes go
	// with the row through FK cascades; likes are cleared explicitly
	// first so counters never point at a ghost user mid-delete.
	DeleteAccount(ctx context.Context, userID int64) error
}

type userService struct {
	userRepo    repository.UserRepository
	gameRepo    repository.GameRepository
	voteRepo    repository.VoteRepository
	commentRepo repository.CommentRepository
	likeRepo    repository.LikeRepository
}

func NewUserService(
	userRepo repository.UserRepository,
	gameRepo repository.GameRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
	likeRepo repository.LikeRepository,
) UserService {
	return &userService{
		userRepo:    userRepo,
		gameRepo:    gameRepo,
		voteRepo:    voteRepo,
		commentRepo: commentRepo,
		likeRepo:    likeRepo,
	}
}

func (s *userService) GetProfile(ctx context.Context, userID int64) (*dto.UserProfileResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToUserProfile(user), nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID int64, req dto.UpdateProfileRequest) (*dto.UserProfileResponse, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Nickname != nil {
		nickname := strings.TrimSpace(*req.Nickname)
		if nickname == "" || len(nickname) > maxNicknameLen {
			return nil, fmt.Errorf("%w: nickname must be 1-%d characters", ErrInvalidInput, maxNicknameLen)
		}
		user.Nickname = nickname
	}
	if req.Bio != nil {
		if len(*req.Bio) > maxBioLen {
			return nil, fmt.Errorf("%w: bio must not exceed %d characters", ErrInvalidInput, maxBioLen)
		}
		user.Bio = *req.Bio
	}
	if req.Location != nil {
		user.Location = *req.Location
	}
	if req.Website != nil {
		user.Website = *req.Website
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return dto.FromModelToUserProfile(user), nil
}

func (s *userService) Stats(ctx context.Context, userID int64) (*dto.UserStatsResponse, error) {
	if _, err := s.getUser(ctx, userID); err != nil {
		return nil, err
	}

	gameCount, err := s.gameRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}
	voteCount, err := s.voteRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	commentCount, err := s.commentRepo.CountByAuthor(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserStatsResponse{
		GameCount:    gameCount,
		VoteCount:    voteCount,
		CommentCount: commentCount,
	}, nil
}

func (s *userService) ListComments(ctx context.Context, authorID int64, page, pageSize int, viewerID *int64) (*dto.Page[dto.CommentResponse], error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}
	if _, err := s.getUser(ctx, authorID); err != nil {
		return nil, err
	}

	comments, total, err := s.commentRepo.ListByAuthor(ctx, authorID, page, pageSize)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return dto.NewPage([]dto.CommentResponse{}, total, page, pageSize), nil
	}

	ids := make([]int64, 0, len(comments))
	for i := range comments {
		ids = append(ids, comments[i].ID)
	}

	likeCounts, err := s.likeRepo.CountByCommentIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	likedIDs := map[int64]bool{}
	if viewerID != nil {
		likedIDs, err = s.likeRepo.LikedCommentIDs(ctx, *viewerID, ids)
		if err != nil {
			return nil, err
		}
	}

	responses := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		c := &comments[i]
		responses = append(responses, *dto.FromModelToCommentResponse(c, likeCounts[c.ID], likedIDs[c.ID]))
	}
	return dto.NewPage(responses, total, page, pageSize), nil
}

func (s *userService) DeleteAccount(ctx context.Context, userID int64) error {
	if _, err := s.getUser(ctx, userID); err != nil {
		return err
	}

	if err := s.likeRepo.DeleteAllByUser(ctx, userID); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, userID)
}

func (s *userService) getUser(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
		}
		return nil, err
	}
	return user, nil
}
