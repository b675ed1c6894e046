package repository

import (
	"context"

	"balancehub/internal/models"

	"gorm.io/gorm"
)

// VoteCounts holds the per-option tallies for a single game.
type VoteCounts struct {
	OptionA int64
	OptionB int64
}

// VoteRepository defines the interface for vote data operations.
type VoteRepository interface {
	Create(ctx context.Context, vote *models.Vote) error
	// UpdateOption changes the picked side of an existing vote in place,
	// leaving id and created_at untouched.
	UpdateOption(ctx context.Context, voteID int64, option models.VoteOption) error
	// Delete removes a vote row and reports whether one was there.
	Delete(ctx context.Context, voteID int64) (bool, error)
	GetByUserAndGame(ctx context.Context, userID, gameID int64) (*models.Vote, error)
	CountsByGameID(ctx context.Context, gameID int64) (VoteCounts, error)
	// CountsByGameIDs tallies option A/B votes for all given games in a
	// single grouped query. Games with no votes are absent from the map.
	CountsByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]VoteCounts, error)
	// OptionsByUser returns the user's picked side for each of the given
	// games in one query.
	OptionsByUser(ctx context.Context, userID int64, gameIDs []int64) (map[int64]models.VoteOption, error)
	ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Vote, int64, error)
	CountByUser(ctx context.Context, userID int64) (int64, error)
}

type voteRepository struct {
	db *gorm.DB
}

func NewVoteRepository(db *gorm.DB) VoteRepository {
	return &voteRepository{db: db}
}

func (r *voteRepository) Create(ctx context.Context, vote *models.Vote) error {
	return r.db.WithContext(ctx).Create(vote).Error
}

func (r *voteRepository) UpdateOption(ctx context.Context, voteID int64, option models.VoteOption) error {
	return r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("id = ?", voteID).
		UpdateColumn("selected_option", option).Error
}

func (r *voteRepository) Delete(ctx context.Context, voteID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Vote{}, "id = ?", voteID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *voteRepository) GetByUserAndGame(ctx context.Context, userID, gameID int64) (*models.Vote, error) {
	var vote models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&vote).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

func (r *voteRepository) CountsByGameID(ctx context.Context, gameID int64) (VoteCounts, error) {
	counts, err := r.CountsByGameIDs(ctx, []int64{gameID})
	if err != nil {
		return VoteCounts{}, err
	}
	return counts[gameID], nil
}

func (r *voteRepository) CountsByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]VoteCounts, error) {
	result := make(map[int64]VoteCounts, len(gameIDs))
	if len(gameIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		GameID  int64
		OptionA int64
		OptionB int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("game_id, "+
			"SUM(CASE WHEN selected_option = 'A' THEN 1 ELSE 0 END) AS option_a, "+
			"SUM(CASE WHEN selected_option = 'B' THEN 1 ELSE 0 END) AS option_b").
		Where("game_id IN ?", gameIDs).
		Group("game_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.GameID] = VoteCounts{OptionA: row.OptionA, OptionB: row.OptionB}
	}
	return result, nil
}

func (r *voteRepository) OptionsByUser(ctx context.Context, userID int64, gameIDs []int64) (map[int64]models.VoteOption, error) {
	result := make(map[int64]models.VoteOption, len(gameIDs))
	if len(gameIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		GameID         int64
		SelectedOption models.VoteOption
	}
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Select("game_id, selected_option").
		Where("user_id = ? AND game_id IN ?", userID, gameIDs).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.GameID] = row.SelectedOption
	}
	return result, nil
}

func (r *voteRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Vote, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("user_id = ?", userID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var votes []models.Vote
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&votes).Error
	if err != nil {
		return nil, 0, err
	}

	return votes, total, nil
}

func (r *voteRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	return count, err
}
