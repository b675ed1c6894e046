package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"balancehub/internal/dto"
	"balancehub/internal/models"
	"balancehub/internal/repository"

	"gorm.io/gorm"
)

// GameSort selects the ordering of a game listing.
type GameSort string

const (
	SortLatest  GameSort = "latest"  // created_at, newest first
	SortPopular GameSort = "popular" // view_count
	SortVotes   GameSort = "votes"   // total vote count
	SortBest    GameSort = "best"    // likes inside a trailing period window
)

// RankingPeriod is the trailing window used by the "best" sort.
type RankingPeriod string

const (
	PeriodDaily   RankingPeriod = "daily"
	PeriodWeekly  RankingPeriod = "weekly"
	PeriodMonthly RankingPeriod = "monthly"
	PeriodAll     RankingPeriod = "all"
)

// WindowStart returns the lower bound of the period relative to now,
// or nil for the unbounded all-time window.
func (p RankingPeriod) WindowStart(now time.Time) *time.Time {
	var hours int
	switch p {
	case PeriodDaily:
		hours = 24
	case PeriodWeekly:
		hours = 168
	case PeriodMonthly:
		hours = 720
	default:
		return nil
	}
	start := now.Add(-time.Duration(hours) * time.Hour)
	return &start
}

// ParseRankingPeriod validates a period string; empty means all-time.
func ParseRankingPeriod(s string) (RankingPeriod, error) {
	switch RankingPeriod(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodAll:
		return RankingPeriod(s), nil
	case "":
		return PeriodAll, nil
	}
	return "", fmt.Errorf("%w: unknown ranking period %q", ErrInvalidInput, s)
}

const (
	maxTitleLen     = 200
	maxOptionLen    = 100
	maxPageSize     = 100
	defaultPageSize = 20
)

type GameService interface {
	Create(ctx context.Context, authorID int64, req dto.CreateGameRequest) (*dto.GameResponse, error)
	// Get fetches a game for display and bumps its view counter.
	Get(ctx context.Context, gameID int64, viewerID *int64) (*dto.GameResponse, error)
	// GetInfo fetches a game without touching the view counter.
	GetInfo(ctx context.Context, gameID int64, viewerID *int64) (*dto.GameResponse, error)
	Update(ctx context.Context, gameID, userID int64, req dto.UpdateGameRequest) (*dto.GameResponse, error)
	Delete(ctx context.Context, gameID, userID int64, isAdmin bool) error
	// List pages games under the given sort. period only matters for
	// SortBest. Whatever the sort, the page is decorated through a
	// single stats aggregation call.
	List(ctx context.Context, sort GameSort, period RankingPeriod, page, pageSize int, viewerID *int64) (*dto.Page[dto.GameResponse], error)
	Search(ctx context.Context, title string, page, pageSize int, viewerID *int64) (*dto.Page[dto.GameResponse], error)
	ListByAuthor(ctx context.Context, authorID int64, page, pageSize int, viewerID *int64) (*dto.Page[dto.GameResponse], error)
}

type gameService struct {
	gameRepo repository.GameRepository
	userRepo repository.UserRepository
	stats    StatsService
	now      func() time.Time
}

func NewGameService(
	gameRepo repository.GameRepository,
	userRepo repository.UserRepository,
	stats StatsService,
) GameService {
	return &gameService{
		gameRepo: gameRepo,
		userRepo: userRepo,
		stats:    stats,
		now:      time.Now,
	}
}

func (s *gameService) Create(ctx context.Context, authorID int64, req dto.CreateGameRequest) (*dto.GameResponse, error) {
	if err := validateGameContent(req.Title, req.OptionA, req.OptionB); err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, authorID)
		}
		return nil, err
	}

	game := &models.Game{
		Title:              strings.TrimSpace(req.Title),
		Description:        req.Description,
		OptionA:            strings.TrimSpace(req.OptionA),
		OptionADescription: req.OptionADescription,
		OptionB:            strings.TrimSpace(req.OptionB),
		OptionBDescription: req.OptionBDescription,
		AuthorID:           authorID,
	}
	if err := s.gameRepo.Create(ctx, game); err != nil {
		return nil, err
	}

	// Reload with author data.
	game, err := s.gameRepo.GetByID(ctx, game.ID)
	if err != nil {
		return nil, err
	}

	return dto.FromModelToGameResponse(game, dto.GameStats{}), nil
}

func (s *gameService) Get(ctx context.Context, gameID int64, viewerID *int64) (*dto.GameResponse, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if err := s.gameRepo.IncrementViewCount(ctx, gameID); err != nil {
		return nil, err
	}
	game.ViewCount++

	return s.decorate(ctx, game, viewerID)
}

func (s *gameService) GetInfo(ctx context.Context, gameID int64, viewerID *int64) (*dto.GameResponse, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	return s.decorate(ctx, game, viewerID)
}

func (s *gameService) Update(ctx context.Context, gameID, userID int64, req dto.UpdateGameRequest) (*dto.GameResponse, error) {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return nil, err
	}

	if game.AuthorID != userID {
		return nil, fmt.Errorf("%w: game %d is not owned by user %d", ErrPermissionDenied, gameID, userID)
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if title == "" || len(title) > maxTitleLen {
			return nil, fmt.Errorf("%w: title must be 1-%d characters", ErrInvalidInput, maxTitleLen)
		}
		game.Title = title
	}
	if req.Description != nil {
		game.Description = *req.Description
	}

	if err := s.gameRepo.Update(ctx, game); err != nil {
		return nil, err
	}

	return s.decorate(ctx, game, &userID)
}

func (s *gameService) Delete(ctx context.Context, gameID, userID int64, isAdmin bool) error {
	game, err := s.getGame(ctx, gameID)
	if err != nil {
		return err
	}

	if game.AuthorID != userID && !isAdmin {
		return fmt.Errorf("%w: game %d is not owned by user %d", ErrPermissionDenied, gameID, userID)
	}

	return s.gameRepo.Delete(ctx, gameID)
}

func (s *gameService) List(ctx context.Context, sort GameSort, period RankingPeriod, page, pageSize int, viewerID *int64) (*dto.Page[dto.GameResponse], error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	switch sort {
	case SortLatest, "":
		games, total, err := s.gameRepo.ListLatest(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		return s.decoratePage(ctx, games, total, page, pageSize, viewerID)
	case SortPopular:
		games, total, err := s.gameRepo.ListByViewCount(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		return s.decoratePage(ctx, games, total, page, pageSize, viewerID)
	case SortVotes:
		games, total, err := s.gameRepo.ListByVoteCount(ctx, page, pageSize)
		if err != nil {
			return nil, err
		}
		return s.decoratePage(ctx, games, total, page, pageSize, viewerID)
	case SortBest:
		return s.listBest(ctx, period, page, pageSize, viewerID)
	}
	return nil, fmt.Errorf("%w: unknown sort %q", ErrInvalidInput, sort)
}

// listBest ranks by likes accrued inside the period window but still
// reports lifetime stats, so clients can show both the period rank and
// the all-time counters side by side.
func (s *gameService) listBest(ctx context.Context, period RankingPeriod, page, pageSize int, viewerID *int64) (*dto.Page[dto.GameResponse], error) {
	since := period.WindowStart(s.now())

	ranked, total, err := s.gameRepo.ListByLikesSince(ctx, since, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(ranked))
	for i := range ranked {
		ids = append(ids, ranked[i].Game.ID)
	}

	stats, err := s.stats.Aggregate(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GameResponse, 0, len(ranked))
	for i := range ranked {
		resp := dto.FromModelToGameResponse(&ranked[i].Game, stats[ranked[i].Game.ID])
		periodLikes := ranked[i].PeriodLikeCount
		resp.PeriodLikeCount = &periodLikes
		responses = append(responses, *resp)
	}

	return dto.NewPage(responses, total, page, pageSize), nil
}

func (s *gameService) Search(ctx context.Context, title string, page, pageSize int, viewerID *int64) (*dto.Page[dto.GameResponse], error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: empty search keyword", ErrInvalidInput)
	}

	games, total, err := s.gameRepo.SearchByTitle(ctx, title, page, pageSize)
	if err != nil {
		return nil, err
	}
	return s.decoratePage(ctx, games, total, page, pageSize, viewerID)
}

func (s *gameService) ListByAuthor(ctx context.Context, authorID int64, page, pageSize int, viewerID *int64) (*dto.Page[dto.GameResponse], error) {
	page, pageSize, err := normalizePage(page, pageSize)
	if err != nil {
		return nil, err
	}

	if _, err := s.userRepo.FindByID(ctx, authorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, authorID)
		}
		return nil, err
	}

	games, total, err := s.gameRepo.ListByAuthor(ctx, authorID, page, pageSize)
	if err != nil {
		return nil, err
	}
	return s.decoratePage(ctx, games, total, page, pageSize, viewerID)
}

func (s *gameService) getGame(ctx context.Context, gameID int64) (*models.Game, error) {
	game, err := s.gameRepo.GetByID(ctx, gameID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: game %d", ErrNotFound, gameID)
		}
		return nil, err
	}
	return game, nil
}

func (s *gameService) decorate(ctx context.Context, game *models.Game, viewerID *int64) (*dto.GameResponse, error) {
	stats, err := s.stats.ForGame(ctx, game.ID, viewerID)
	if err != nil {
		return nil, err
	}
	return dto.FromModelToGameResponse(game, stats), nil
}

// decoratePage attaches stats to a page of games with one aggregation
// call for the whole page.
func (s *gameService) decoratePage(ctx context.Context, games []models.Game, total int64, page, pageSize int, viewerID *int64) (*dto.Page[dto.GameResponse], error) {
	ids := make([]int64, 0, len(games))
	for i := range games {
		ids = append(ids, games[i].ID)
	}

	stats, err := s.stats.Aggregate(ctx, ids, viewerID)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.GameResponse, 0, len(games))
	for i := range games {
		responses = append(responses, *dto.FromModelToGameResponse(&games[i], stats[games[i].ID]))
	}

	return dto.NewPage(responses, total, page, pageSize), nil
}

func validateGameContent(title, optionA, optionB string) error {
	title = strings.TrimSpace(title)
	optionA = strings.TrimSpace(optionA)
	optionB = strings.TrimSpace(optionB)

	switch {
	case title == "":
		return fmt.Errorf("%w: title is required", ErrInvalidInput)
	case len(title) > maxTitleLen:
		return fmt.Errorf("%w: title must not exceed %d characters", ErrInvalidInput, maxTitleLen)
	case optionA == "" || optionB == "":
		return fmt.Errorf("%w: both options are required", ErrInvalidInput)
	case len(optionA) > maxOptionLen || len(optionB) > maxOptionLen:
		return fmt.Errorf("%w: options must not exceed %d characters", ErrInvalidInput, maxOptionLen)
	}
	return nil
}

func normalizePage(page, pageSize int) (int, int, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		return 0, 0, fmt.Errorf("%w: page size must not exceed %d", ErrInvalidInput, maxPageSize)
	}
	return page, pageSize, nil
}
