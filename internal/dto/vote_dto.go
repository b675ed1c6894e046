package dto

import (
	"time"

	"balancehub/internal/models"
)

// CastVoteRequest: payload for casting (or toggling) a vote
type CastVoteRequest struct {
	SelectedOption string `json:"selected_option" binding:"required"`
}

// VoteResult tags the transition the cast produced.
type VoteResult string

const (
	VoteCreated   VoteResult = "created"
	VoteUpdated   VoteResult = "updated"
	VoteCancelled VoteResult = "cancelled"
)

// VoteStats: per-option counts for one game
type VoteStats struct {
	OptionAVotes int64 `json:"option_a_votes"`
	OptionBVotes int64 `json:"option_b_votes"`
	TotalVotes   int64 `json:"total_votes"`
}

// VoteResponse: outcome of a cast plus the game's fresh vote counts.
// Vote is nil when the cast cancelled an existing vote.
type VoteResponse struct {
	Result VoteResult `json:"result"`
	Vote   *VoteDTO   `json:"vote,omitempty"`
	Stats  VoteStats  `json:"stats"`
}

// VoteDTO: a single vote row
type VoteDTO struct {
	ID             int64             `json:"id"`
	UserID         int64             `json:"user_id"`
	GameID         int64             `json:"game_id"`
	SelectedOption models.VoteOption `json:"selected_option"`
	CreatedAt      time.Time         `json:"created_at"`
}

// FromModelToVoteDTO converts a Vote model to its response shape.
func FromModelToVoteDTO(vote *models.Vote) *VoteDTO {
	return &VoteDTO{
		ID:             vote.ID,
		UserID:         vote.UserID,
		GameID:         vote.GameID,
		SelectedOption: vote.SelectedOption,
		CreatedAt:      vote.CreatedAt,
	}
}
