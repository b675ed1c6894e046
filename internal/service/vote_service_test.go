package service

import (
	"context"
	"testing"

	"balancehub/internal/dto"
	"balancehub/internal/models"
	"balancehub/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newVoteServiceForTest() (VoteService, *MockVoteRepository, *MockGameRepository) {
	voteRepo := new(MockVoteRepository)
	gameRepo := new(MockGameRepository)
	return NewVoteService(voteRepo, gameRepo), voteRepo, gameRepo
}

func TestCast_FirstVoteCreates(t *testing.T) {
	svc, voteRepo, gameRepo := newVoteServiceForTest()
	ctx := context.Background()

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(nil, gorm.ErrRecordNotFound)
	voteRepo.On("Create", ctx, mock.MatchedBy(func(v *models.Vote) bool {
		return v.UserID == 1 && v.GameID == 10 && v.SelectedOption == models.VoteOptionA
	})).Return(nil)
	voteRepo.On("CountsByGameID", ctx, int64(10)).Return(repository.VoteCounts{OptionA: 5, OptionB: 3}, nil)

	resp, err := svc.Cast(ctx, 1, 10, dto.CastVoteRequest{SelectedOption: "A"})

	assert.NoError(t, err)
	assert.Equal(t, dto.VoteCreated, resp.Result)
	assert.NotNil(t, resp.Vote)
	assert.Equal(t, models.VoteOptionA, resp.Vote.SelectedOption)
	assert.Equal(t, int64(8), resp.Stats.TotalVotes)
	voteRepo.AssertExpectations(t)
}

func TestCast_SwitchUpdatesInPlace(t *testing.T) {
	svc, voteRepo, gameRepo := newVoteServiceForTest()
	ctx := context.Background()

	existing := &models.Vote{ID: 7, UserID: 1, GameID: 10, SelectedOption: models.VoteOptionA}

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(existing, nil)
	voteRepo.On("UpdateOption", ctx, int64(7), models.VoteOptionB).Return(nil)
	voteRepo.On("CountsByGameID", ctx, int64(10)).Return(repository.VoteCounts{OptionA: 4, OptionB: 4}, nil)

	resp, err := svc.Cast(ctx, 1, 10, dto.CastVoteRequest{SelectedOption: "B"})

	assert.NoError(t, err)
	assert.Equal(t, dto.VoteUpdated, resp.Result)
	assert.Equal(t, models.VoteOptionB, resp.Vote.SelectedOption)
	// The row keeps its identity; no delete+insert round trip.
	voteRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	voteRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCast_SameOptionCancels(t *testing.T) {
	svc, voteRepo, gameRepo := newVoteServiceForTest()
	ctx := context.Background()

	existing := &models.Vote{ID: 7, UserID: 1, GameID: 10, SelectedOption: models.VoteOptionA}

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(existing, nil)
	voteRepo.On("Delete", ctx, int64(7)).Return(true, nil)
	voteRepo.On("CountsByGameID", ctx, int64(10)).Return(repository.VoteCounts{OptionA: 4, OptionB: 3}, nil)

	resp, err := svc.Cast(ctx, 1, 10, dto.CastVoteRequest{SelectedOption: "A"})

	assert.NoError(t, err)
	assert.Equal(t, dto.VoteCancelled, resp.Result)
	assert.Nil(t, resp.Vote)
}

func TestCast_RoundTripReturnsToNoVote(t *testing.T) {
	svc, voteRepo, gameRepo := newVoteServiceForTest()
	ctx := context.Background()

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)
	voteRepo.On("CountsByGameID", ctx, int64(10)).Return(repository.VoteCounts{}, nil)

	// cast A
	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(nil, gorm.ErrRecordNotFound).Once()
	voteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	resp, err := svc.Cast(ctx, 1, 10, dto.CastVoteRequest{SelectedOption: "A"})
	assert.NoError(t, err)
	assert.Equal(t, dto.VoteCreated, resp.Result)

	// cast A again cancels
	existing := &models.Vote{ID: 7, UserID: 1, GameID: 10, SelectedOption: models.VoteOptionA}
	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(existing, nil).Once()
	voteRepo.On("Delete", ctx, int64(7)).Return(true, nil).Once()
	resp, err = svc.Cast(ctx, 1, 10, dto.CastVoteRequest{SelectedOption: "A"})
	assert.NoError(t, err)
	assert.Equal(t, dto.VoteCancelled, resp.Result)

	// a fresh cast creates again
	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(nil, gorm.ErrRecordNotFound).Once()
	voteRepo.On("Create", ctx, mock.Anything).Return(nil).Once()
	resp, err = svc.Cast(ctx, 1, 10, dto.CastVoteRequest{SelectedOption: "B"})
	assert.NoError(t, err)
	assert.Equal(t, dto.VoteCreated, resp.Result)
}

func TestCast_InsertRaceRecoversViaReRead(t *testing.T) {
	svc, voteRepo, gameRepo := newVoteServiceForTest()
	ctx := context.Background()

	gameRepo.On("GetByID", ctx, int64(10)).Return(&models.Game{ID: 10}, nil)

	// First read sees nothing, the insert hits the unique index, and
	// the re-read finds the row the concurrent request created.
	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(nil, gorm.ErrRecordNotFound).Once()
	voteRepo.On("Create", ctx, mock.Anything).Return(&pgconn.PgError{Code: "23505"}).Once()

	winner := &models.Vote{ID: 9, UserID: 1, GameID: 10, SelectedOption: models.VoteOptionA}
	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(winner, nil).Once()
	voteRepo.On("UpdateOption", ctx, int64(9), models.VoteOptionB).Return(nil)
	voteRepo.On("CountsByGameID", ctx, int64(10)).Return(repository.VoteCounts{OptionB: 1}, nil)

	resp, err := svc.Cast(ctx, 1, 10, dto.CastVoteRequest{SelectedOption: "B"})

	assert.NoError(t, err)
	assert.Equal(t, dto.VoteUpdated, resp.Result)
	voteRepo.AssertExpectations(t)
}

func TestCast_InvalidOption(t *testing.T) {
	svc, _, _ := newVoteServiceForTest()

	_, err := svc.Cast(context.Background(), 1, 10, dto.CastVoteRequest{SelectedOption: "C"})

	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCast_GameNotFound(t *testing.T) {
	svc, _, gameRepo := newVoteServiceForTest()
	ctx := context.Background()

	gameRepo.On("GetByID", ctx, int64(99)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Cast(ctx, 1, 99, dto.CastVoteRequest{SelectedOption: "A"})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatus_NoVote(t *testing.T) {
	svc, voteRepo, _ := newVoteServiceForTest()
	ctx := context.Background()

	voteRepo.On("GetByUserAndGame", ctx, int64(1), int64(10)).Return(nil, gorm.ErrRecordNotFound)
	voteRepo.On("CountsByGameID", ctx, int64(10)).Return(repository.VoteCounts{OptionA: 2, OptionB: 1}, nil)

	resp, err := svc.Status(ctx, 1, 10)

	assert.NoError(t, err)
	assert.Nil(t, resp.Vote)
	assert.Equal(t, int64(3), resp.Stats.TotalVotes)
}
