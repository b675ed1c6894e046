package repository

import (
	"context"

	"balancehub/internal/models"

	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations.
type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	// Delete removes a comment; replies and likes cascade at the store level.
	Delete(ctx context.Context, commentID int64) error
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	// ListTopLevel pages depth-0 comments of a game, newest first.
	ListTopLevel(ctx context.Context, gameID int64, page, pageSize int) ([]models.Comment, int64, error)
	// ListReplies returns the replies under one parent, oldest first.
	ListReplies(ctx context.Context, parentID int64) ([]models.Comment, error)
	// ListByParentIDs fetches the replies of every given parent in one
	// query, ordered by parent then chronologically within each parent.
	ListByParentIDs(ctx context.Context, parentIDs []int64) ([]models.Comment, error)
	CountByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]int64, error)
	ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]models.Comment, int64, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) Delete(ctx context.Context, commentID int64) error {
	return r.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", commentID).Error
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&comment, "id = ?", commentID).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) ListTopLevel(ctx context.Context, gameID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("game_id = ? AND parent_comment_id IS NULL", gameID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("game_id = ? AND parent_comment_id IS NULL", gameID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID int64) ([]models.Comment, error) {
	var replies []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_comment_id = ?", parentID).
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *commentRepository) ListByParentIDs(ctx context.Context, parentIDs []int64) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}

	var replies []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("parent_comment_id IN ?", parentIDs).
		Order("parent_comment_id, created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *commentRepository) CountByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]int64, error) {
	result := make(map[int64]int64, len(gameIDs))
	if len(gameIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		GameID int64
		Cnt    int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Select("game_id, COUNT(*) AS cnt").
		Where("game_id IN ?", gameIDs).
		Group("game_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		result[row.GameID] = row.Cnt
	}
	return result, nil
}

func (r *commentRepository) ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}

	return comments, total, nil
}

func (r *commentRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
