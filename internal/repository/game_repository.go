package repository

import (
	"context"
	"time"

	"balancehub/internal/models"

	"gorm.io/gorm"
)

// RankedGame is a game row paired with the number of likes it received
// inside a ranking window.
type RankedGame struct {
	Game            models.Game
	PeriodLikeCount int64
}

// GameRepository defines the interface for balance-game data operations.
// Every listing method orders by a single criterion and pages with the
// usual 1-based page number.
type GameRepository interface {
	Create(ctx context.Context, game *models.Game) error
	GetByID(ctx context.Context, id int64) (*models.Game, error)
	Update(ctx context.Context, game *models.Game) error
	Delete(ctx context.Context, id int64) error
	IncrementViewCount(ctx context.Context, id int64) error

	ListLatest(ctx context.Context, page, pageSize int) ([]models.Game, int64, error)
	ListByViewCount(ctx context.Context, page, pageSize int) ([]models.Game, int64, error)
	ListByVoteCount(ctx context.Context, page, pageSize int) ([]models.Game, int64, error)
	// ListByLikesSince ranks all games by likes with created_at >= since
	// (all-time when since is nil), period-likes descending, newer game
	// first on ties.
	ListByLikesSince(ctx context.Context, since *time.Time, page, pageSize int) ([]RankedGame, int64, error)
	SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]models.Game, int64, error)
	ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]models.Game, int64, error)
	CountByAuthor(ctx context.Context, authorID int64) (int64, error)
}

type gameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

func (r *gameRepository) Create(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Create(game).Error
}

func (r *gameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	var game models.Game
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&game, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &game, nil
}

func (r *gameRepository) Update(ctx context.Context, game *models.Game) error {
	return r.db.WithContext(ctx).Save(game).Error
}

// Delete removes the game row; votes, comments and likes go with it via
// the ON DELETE CASCADE constraints.
func (r *gameRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Game{}, "id = ?", id).Error
}

// IncrementViewCount bumps the counter in SQL. The increment itself is
// atomic; exact view counts are not a correctness requirement.
func (r *gameRepository) IncrementViewCount(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1)).Error
}

func (r *gameRepository) ListLatest(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	return r.listOrdered(ctx, "created_at DESC", page, pageSize)
}

func (r *gameRepository) ListByViewCount(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	return r.listOrdered(ctx, "view_count DESC, created_at DESC", page, pageSize)
}

func (r *gameRepository) listOrdered(ctx context.Context, order string, page, pageSize int) ([]models.Game, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Game{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var games []models.Game
	err := r.db.WithContext(ctx).
		Preload("Author").
		Order(order).
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}

	return games, total, nil
}

// ListByVoteCount orders games by their total vote count through a
// grouped subquery join; games without votes sort last by recency.
func (r *gameRepository) ListByVoteCount(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Game{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sub := r.db.Model(&models.Vote{}).
		Select("game_id, COUNT(*) AS cnt").
		Group("game_id")

	var games []models.Game
	err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("games.*").
		Joins("LEFT JOIN (?) vc ON vc.game_id = games.id", sub).
		Order("COALESCE(vc.cnt, 0) DESC, games.created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Preload("Author").
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}

	return games, total, nil
}

func (r *gameRepository) ListByLikesSince(ctx context.Context, since *time.Time, page, pageSize int) ([]RankedGame, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Game{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sub := r.db.Model(&models.Like{}).
		Select("game_id, COUNT(*) AS cnt").
		Where("game_id IS NOT NULL")
	if since != nil {
		sub = sub.Where("created_at >= ?", *since)
	}
	sub = sub.Group("game_id")

	var rows []struct {
		ID              int64
		PeriodLikeCount int64
	}
	err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Select("games.id, COALESCE(pl.cnt, 0) AS period_like_count").
		Joins("LEFT JOIN (?) pl ON pl.game_id = games.id", sub).
		Order("period_like_count DESC, games.created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	if len(rows) == 0 {
		return nil, total, nil
	}

	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var games []models.Game
	err = r.db.WithContext(ctx).
		Preload("Author").
		Where("id IN ?", ids).
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}

	byID := make(map[int64]models.Game, len(games))
	for _, g := range games {
		byID[g.ID] = g
	}

	// Reassemble in ranked order; the id fetch does not preserve it.
	ranked := make([]RankedGame, 0, len(rows))
	for _, row := range rows {
		game, ok := byID[row.ID]
		if !ok {
			continue
		}
		ranked = append(ranked, RankedGame{Game: game, PeriodLikeCount: row.PeriodLikeCount})
	}

	return ranked, total, nil
}

func (r *gameRepository) SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]models.Game, int64, error) {
	pattern := "%" + title + "%"

	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("title ILIKE ?", pattern).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var games []models.Game
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("title ILIKE ?", pattern).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}

	return games, total, nil
}

func (r *gameRepository) ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]models.Game, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("author_id = ?", authorID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var games []models.Game
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", authorID).
		Order("created_at DESC").
		Limit(pageSize).
		Offset((page - 1) * pageSize).
		Find(&games).Error
	if err != nil {
		return nil, 0, err
	}

	return games, total, nil
}

func (r *gameRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Game{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}
