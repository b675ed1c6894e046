package service

import (
	"context"

	"balancehub/internal/dto"
	"balancehub/internal/models"
	"balancehub/internal/repository"
)

// StatsService computes per-game aggregate counters in batch. The
// number of store round trips is fixed (three grouped counts, plus two
// membership lookups when a viewer is known) no matter how many game
// ids are asked for, so callers can decorate a whole page of games
// without an N+1 blowup. Results are recomputed from the store on every
// call; nothing is cached.
type StatsService interface {
	Aggregate(ctx context.Context, gameIDs []int64, viewerID *int64) (map[int64]dto.GameStats, error)
	ForGame(ctx context.Context, gameID int64, viewerID *int64) (dto.GameStats, error)
}

type statsService struct {
	likeRepo    repository.LikeRepository
	voteRepo    repository.VoteRepository
	commentRepo repository.CommentRepository
}

func NewStatsService(
	likeRepo repository.LikeRepository,
	voteRepo repository.VoteRepository,
	commentRepo repository.CommentRepository,
) StatsService {
	return &statsService{
		likeRepo:    likeRepo,
		voteRepo:    voteRepo,
		commentRepo: commentRepo,
	}
}

func (s *statsService) Aggregate(ctx context.Context, gameIDs []int64, viewerID *int64) (map[int64]dto.GameStats, error) {
	result := make(map[int64]dto.GameStats, len(gameIDs))
	if len(gameIDs) == 0 {
		return result, nil
	}

	likeCounts, err := s.likeRepo.CountByGameIDs(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	voteCounts, err := s.voteRepo.CountsByGameIDs(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	commentCounts, err := s.commentRepo.CountByGameIDs(ctx, gameIDs)
	if err != nil {
		return nil, err
	}

	var likedGames map[int64]bool
	var viewerVotes map[int64]models.VoteOption
	if viewerID != nil {
		likedGames, err = s.likeRepo.LikedGameIDs(ctx, *viewerID, gameIDs)
		if err != nil {
			return nil, err
		}
		viewerVotes, err = s.voteRepo.OptionsByUser(ctx, *viewerID, gameIDs)
		if err != nil {
			return nil, err
		}
	}

	// Games with no rows in a metric simply keep the zero values.
	for _, id := range gameIDs {
		votes := voteCounts[id]
		stats := dto.GameStats{
			LikeCount:    likeCounts[id],
			OptionAVotes: votes.OptionA,
			OptionBVotes: votes.OptionB,
			TotalVotes:   votes.OptionA + votes.OptionB,
			CommentCount: commentCounts[id],
		}
		if viewerID != nil {
			stats.ViewerLiked = likedGames[id]
			if option, ok := viewerVotes[id]; ok {
				stats.ViewerVote = &option
			}
		}
		result[id] = stats
	}

	return result, nil
}

func (s *statsService) ForGame(ctx context.Context, gameID int64, viewerID *int64) (dto.GameStats, error) {
	all, err := s.Aggregate(ctx, []int64{gameID}, viewerID)
	if err != nil {
		return dto.GameStats{}, err
	}
	return all[gameID], nil
}
