package repository

import (
	"context"

	"balancehub/internal/models"

	"gorm.io/gorm"
)

// LikeRepository defines the interface for like data operations. The
// batched count/membership methods back the stats aggregator and issue
// exactly one query each regardless of how many ids they are given.
type LikeRepository interface {
	Create(ctx context.Context, like *models.Like) error
	// Delete removes a like row and reports whether one was there.
	Delete(ctx context.Context, likeID int64) (bool, error)
	GetByUserAndGame(ctx context.Context, userID, gameID int64) (*models.Like, error)
	GetByUserAndComment(ctx context.Context, userID, commentID int64) (*models.Like, error)
	CountByGameID(ctx context.Context, gameID int64) (int64, error)
	CountByCommentID(ctx context.Context, commentID int64) (int64, error)
	CountByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]int64, error)
	CountByCommentIDs(ctx context.Context, commentIDs []int64) (map[int64]int64, error)
	LikedGameIDs(ctx context.Context, userID int64, gameIDs []int64) (map[int64]bool, error)
	LikedCommentIDs(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error)
	DeleteAllByUser(ctx context.Context, userID int64) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) Create(ctx context.Context, like *models.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, likeID int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Like{}, "id = ?", likeID)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *likeRepository) GetByUserAndGame(ctx context.Context, userID, gameID int64) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND game_id = ?", userID, gameID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) GetByUserAndComment(ctx context.Context, userID, commentID int64) (*models.Like, error) {
	var like models.Like
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND comment_id = ?", userID, commentID).
		First(&like).Error
	if err != nil {
		return nil, err
	}
	return &like, nil
}

func (r *likeRepository) CountByGameID(ctx context.Context, gameID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("game_id = ?", gameID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByCommentID(ctx context.Context, commentID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) CountByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]int64, error) {
	return r.groupedCounts(ctx, "game_id", gameIDs)
}

func (r *likeRepository) CountByCommentIDs(ctx context.Context, commentIDs []int64) (map[int64]int64, error) {
	return r.groupedCounts(ctx, "comment_id", commentIDs)
}

func (r *likeRepository) groupedCounts(ctx context.Context, column string, ids []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var rows []struct {
		TargetID int64
		Cnt      int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Select(column+" AS target_id, COUNT(*) AS cnt").
		Where(column+" IN ?", ids).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.TargetID] = row.Cnt
	}
	return result, nil
}

func (r *likeRepository) LikedGameIDs(ctx context.Context, userID int64, gameIDs []int64) (map[int64]bool, error) {
	return r.likedIDs(ctx, "game_id", userID, gameIDs)
}

func (r *likeRepository) LikedCommentIDs(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	return r.likedIDs(ctx, "comment_id", userID, commentIDs)
}

func (r *likeRepository) likedIDs(ctx context.Context, column string, userID int64, ids []int64) (map[int64]bool, error) {
	result := make(map[int64]bool, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	var liked []int64
	err := r.db.WithContext(ctx).
		Model(&models.Like{}).
		Where("user_id = ? AND "+column+" IN ?", userID, ids).
		Pluck(column, &liked).Error
	if err != nil {
		return nil, err
	}

	for _, id := range liked {
		result[id] = true
	}
	return result, nil
}

func (r *likeRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.Like{}).Error
}
