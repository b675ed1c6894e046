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

type VoteService interface {
	// Cast applies one vote transition for the user on the game:
	// no existing vote creates one, a vote on the other option moves
	// it, and a vote on the same option cancels it. The response
	// reports which transition happened along with fresh counts.
	Cast(ctx context.Context, userID, gameID int64, req dto.CastVoteRequest) (*dto.VoteResponse, error)
	// Status returns the user's current vote (nil if none) and counts.
	Status(ctx context.Context, userID, gameID int64) (*dto.VoteResponse, error)
	Stats(ctx context.Context, gameID int64) (*dto.VoteStats, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) (*dto.Page[dto.VoteDTO], error)
}

type voteService struct {
	voteRepo repository.VoteRepository
	gameRepo repository.GameRepository
}

func NewVoteService(voteRepo repository.VoteRepository, gameRepo repository.GameRepository) VoteService {
	return &voteService{voteRepo: voteRepo, gameRepo: gameRepo}
}

func (s *voteService) Cast(ctx context.Context, userID, gameID int64, req dto.CastVoteRequest) (*dto.VoteResponse, error) {
	option := models.VoteOption(req.SelectedOption)
	if !option.Valid() {
		return nil, fmt.Errorf("%w: selected option must be A or B", ErrInvalidInput)
	}

	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return nil, err
	}

	result, vote, err := s.transition(ctx, userID, gameID, option, true)
	if err != nil {
		return nil, err
	}

	return s.buildResponse(ctx, gameID, result, vote)
}

// transition runs one step of the vote state machine. retry permits a
// single re-read when an insert loses a race against a concurrent vote
// by the same user; the conflicting row then drives an update or
// cancel instead.
func (s *voteService) transition(ctx context.Context, userID, gameID int64, option models.VoteOption, retry bool) (dto.VoteResult, *models.Vote, error) {
	existing, err := s.voteRepo.GetByUserAndGame(ctx, userID, gameID)
	switch {
	case err == nil:
		if existing.SelectedOption == option {
			// Same option again cancels the vote. A zero-row delete
			// means someone else already removed it, which lands in
			// the same state.
			if _, err := s.voteRepo.Delete(ctx, existing.ID); err != nil {
				return "", nil, err
			}
			return dto.VoteCancelled, nil, nil
		}
		if err := s.voteRepo.UpdateOption(ctx, existing.ID, option); err != nil {
			return "", nil, err
		}
		existing.SelectedOption = option
		return dto.VoteUpdated, existing, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		vote := &models.Vote{UserID: userID, GameID: gameID, SelectedOption: option}
		createErr := s.voteRepo.Create(ctx, vote)
		if createErr == nil {
			return dto.VoteCreated, vote, nil
		}
		if repository.IsUniqueViolation(createErr) && retry {
			return s.transition(ctx, userID, gameID, option, false)
		}
		return "", nil, createErr

	default:
		return "", nil, err
	}
}

func (s *voteService) Status(ctx context.Context, userID, gameID int64) (*dto.VoteResponse, error) {
	vote, err := s.voteRepo.GetByUserAndGame(ctx, userID, gameID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		vote = nil
	}

	counts, err := s.voteRepo.CountsByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	resp := &dto.VoteResponse{Stats: voteStatsFromCounts(counts)}
	if vote != nil {
		resp.Vote = dto.FromModelToVoteDTO(vote)
	}
	return resp, nil
}

func (s *voteService) Stats(ctx context.Context, gameID int64) (*dto.VoteStats, error) {
	if _, err := s.gameRepo.GetByID(ctx, gameID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return nil, err
	}

	counts, err := s.voteRepo.CountsByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}
	stats := voteStatsFromCounts(counts)
	return &stats, nil
}

func (s *voteService) ListByUser(ctx context.Context, userID int64, page, pageSize int) (*dto.Page[dto.VoteDTO], error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	votes, total, err := s.voteRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}

	items := make([]dto.VoteDTO, 0, len(votes))
	for i := range votes {
		items = append(items, *dto.FromModelToVoteDTO(&votes[i]))
	}
	return dto.NewPage(items, total, page, pageSize), nil
}

func (s *voteService) buildResponse(ctx context.Context, gameID int64, result dto.VoteResult, vote *models.Vote) (*dto.VoteResponse, error) {
	counts, err := s.voteRepo.CountsByGameID(ctx, gameID)
	if err != nil {
		return nil, err
	}

	resp := &dto.VoteResponse{
		Result: result,
		Stats:  voteStatsFromCounts(counts),
	}
	if vote != nil {
		resp.Vote = dto.FromModelToVoteDTO(vote)
	}
	return resp, nil
}

func voteStatsFromCounts(c repository.VoteCounts) dto.VoteStats {
	return dto.VoteStats{
		OptionAVotes: c.OptionA,
		OptionBVotes: c.OptionB,
		TotalVotes:   c.OptionA + c.OptionB,
	}
}
