package dto

import (
	"time"

	"balancehub/internal/models"
)

// CreateGameRequest: payload for creating a balance game
type CreateGameRequest struct {
	Title              string `json:"title" binding:"required,max=200"`
	Description        string `json:"description"`
	OptionA            string `json:"option_a" binding:"required,max=100"`
	OptionADescription string `json:"option_a_description"`
	OptionB            string `json:"option_b" binding:"required,max=100"`
	OptionBDescription string `json:"option_b_description"`
}

// UpdateGameRequest: payload for updating a game; nil fields are left as-is
type UpdateGameRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// GameStats carries the aggregate counters for one game plus the
// viewer's own like/vote state. TotalVotes is always the sum of the two
// option counts, never an independently stored number.
type GameStats struct {
	LikeCount    int64              `json:"like_count"`
	OptionAVotes int64              `json:"option_a_votes"`
	OptionBVotes int64              `json:"option_b_votes"`
	TotalVotes   int64              `json:"total_votes"`
	CommentCount int64              `json:"comment_count"`
	ViewerLiked  bool               `json:"is_liked"`
	ViewerVote   *models.VoteOption `json:"user_vote,omitempty"`
}

// GameResponse: a game together with its lifetime stats. PeriodLikeCount
// is only set on period-ranked ("best") listings and counts likes inside
// the requested window.
type GameResponse struct {
	ID                 int64     `json:"id"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	OptionA            string    `json:"option_a"`
	OptionADescription string    `json:"option_a_description"`
	OptionB            string    `json:"option_b"`
	OptionBDescription string    `json:"option_b_description"`
	AuthorID           int64     `json:"author_id"`
	AuthorUsername     string    `json:"author_username"`
	AuthorNickname     string    `json:"author_nickname"`
	ViewCount          int64     `json:"view_count"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	GameStats

	PeriodLikeCount *int64 `json:"period_like_count,omitempty"`
}

// FromModelToGameResponse converts a Game model plus its aggregated
// stats to a GameResponse. Author must be preloaded.
func FromModelToGameResponse(game *models.Game, stats GameStats) *GameResponse {
	return &GameResponse{
		ID:                 game.ID,
		Title:              game.Title,
		Description:        game.Description,
		OptionA:            game.OptionA,
		OptionADescription: game.OptionADescription,
		OptionB:            game.OptionB,
		OptionBDescription: game.OptionBDescription,
		AuthorID:           game.AuthorID,
		AuthorUsername:     game.Author.Username,
		AuthorNickname:     game.Author.Nickname,
		ViewCount:          game.ViewCount,
		CreatedAt:          game.CreatedAt,
		UpdatedAt:          game.UpdatedAt,
		GameStats:          stats,
	}
}
