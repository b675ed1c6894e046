package service

import (
	"context"
	"time"

	"balancehub/internal/models"
	"balancehub/internal/repository"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository mocks the repository.UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockGameRepository mocks the repository.GameRepository interface
type MockGameRepository struct {
	mock.Mock
}

func (m *MockGameRepository) Create(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) GetByID(ctx context.Context, id int64) (*models.Game, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Game), args.Error(1)
}

func (m *MockGameRepository) Update(ctx context.Context, game *models.Game) error {
	args := m.Called(ctx, game)
	return args.Error(0)
}

func (m *MockGameRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameRepository) IncrementViewCount(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockGameRepository) ListLatest(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) ListByViewCount(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) ListByVoteCount(ctx context.Context, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) ListByLikesSince(ctx context.Context, since *time.Time, page, pageSize int) ([]repository.RankedGame, int64, error) {
	args := m.Called(ctx, since, page, pageSize)
	return args.Get(0).([]repository.RankedGame), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) SearchByTitle(ctx context.Context, title string, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, title, page, pageSize)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]models.Game, int64, error) {
	args := m.Called(ctx, authorID, page, pageSize)
	return args.Get(0).([]models.Game), args.Get(1).(int64), args.Error(2)
}

func (m *MockGameRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockVoteRepository mocks the repository.VoteRepository interface
type MockVoteRepository struct {
	mock.Mock
}

func (m *MockVoteRepository) Create(ctx context.Context, vote *models.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *MockVoteRepository) UpdateOption(ctx context.Context, voteID int64, option models.VoteOption) error {
	args := m.Called(ctx, voteID, option)
	return args.Error(0)
}

func (m *MockVoteRepository) Delete(ctx context.Context, voteID int64) (bool, error) {
	args := m.Called(ctx, voteID)
	return args.Bool(0), args.Error(1)
}

func (m *MockVoteRepository) GetByUserAndGame(ctx context.Context, userID, gameID int64) (*models.Vote, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vote), args.Error(1)
}

func (m *MockVoteRepository) CountsByGameID(ctx context.Context, gameID int64) (repository.VoteCounts, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(repository.VoteCounts), args.Error(1)
}

func (m *MockVoteRepository) CountsByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]repository.VoteCounts, error) {
	args := m.Called(ctx, gameIDs)
	return args.Get(0).(map[int64]repository.VoteCounts), args.Error(1)
}

func (m *MockVoteRepository) OptionsByUser(ctx context.Context, userID int64, gameIDs []int64) (map[int64]models.VoteOption, error) {
	args := m.Called(ctx, userID, gameIDs)
	return args.Get(0).(map[int64]models.VoteOption), args.Error(1)
}

func (m *MockVoteRepository) ListByUser(ctx context.Context, userID int64, page, pageSize int) ([]models.Vote, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]models.Vote), args.Get(1).(int64), args.Error(2)
}

func (m *MockVoteRepository) CountByUser(ctx context.Context, userID int64) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

// MockCommentRepository mocks the repository.CommentRepository interface
type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Delete(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListTopLevel(ctx context.Context, gameID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, gameID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, parentID int64) ([]models.Comment, error) {
	args := m.Called(ctx, parentID)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByParentIDs(ctx context.Context, parentIDs []int64) ([]models.Comment, error) {
	args := m.Called(ctx, parentIDs)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) CountByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, gameIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockCommentRepository) ListByAuthor(ctx context.Context, authorID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, authorID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) CountByAuthor(ctx context.Context, authorID int64) (int64, error) {
	args := m.Called(ctx, authorID)
	return args.Get(0).(int64), args.Error(1)
}

// MockLikeRepository mocks the repository.LikeRepository interface
type MockLikeRepository struct {
	mock.Mock
}

func (m *MockLikeRepository) Create(ctx context.Context, like *models.Like) error {
	args := m.Called(ctx, like)
	return args.Error(0)
}

func (m *MockLikeRepository) Delete(ctx context.Context, likeID int64) (bool, error) {
	args := m.Called(ctx, likeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLikeRepository) GetByUserAndGame(ctx context.Context, userID, gameID int64) (*models.Like, error) {
	args := m.Called(ctx, userID, gameID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockLikeRepository) GetByUserAndComment(ctx context.Context, userID, commentID int64) (*models.Like, error) {
	args := m.Called(ctx, userID, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Like), args.Error(1)
}

func (m *MockLikeRepository) CountByGameID(ctx context.Context, gameID int64) (int64, error) {
	args := m.Called(ctx, gameID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) CountByCommentID(ctx context.Context, commentID int64) (int64, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockLikeRepository) CountByGameIDs(ctx context.Context, gameIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, gameIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockLikeRepository) CountByCommentIDs(ctx context.Context, commentIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, commentIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockLikeRepository) LikedGameIDs(ctx context.Context, userID int64, gameIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, gameIDs)
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockLikeRepository) LikedCommentIDs(ctx context.Context, userID int64, commentIDs []int64) (map[int64]bool, error) {
	args := m.Called(ctx, userID, commentIDs)
	return args.Get(0).(map[int64]bool), args.Error(1)
}

func (m *MockLikeRepository) DeleteAllByUser(ctx context.Context, userID int64) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockTokenStore mocks the repository.TokenStore interface
type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	args := m.Called(ctx, token, userID, ttl)
	return args.Error(0)
}

func (m *MockTokenStore) Resolve(ctx context.Context, token string) (int64, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTokenStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}
