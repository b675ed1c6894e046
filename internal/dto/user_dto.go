package dto

import (
	"time"

	"balancehub/internal/models"
)

// UserProfileResponse: public view of a user
type UserProfileResponse struct {
	ID              int64     `json:"id"`
	Username        string    `json:"username"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL string    `json:"profile_image_url"`
	Bio             string    `json:"bio"`
	Location        string    `json:"location"`
	Website         string    `json:"website"`
	Provider        string    `json:"provider"`
	CreatedAt       time.Time `json:"created_at"`
}

// UpdateProfileRequest: payload for editing one's own profile; nil
// fields are left as-is
type UpdateProfileRequest struct {
	Nickname *string `json:"nickname,omitempty"`
	Bio      *string `json:"bio,omitempty"`
	Location *string `json:"location,omitempty"`
	Website  *string `json:"website,omitempty"`
}

// UserStatsResponse: activity counters for one user
type UserStatsResponse struct {
	GameCount    int64 `json:"game_count"`
	VoteCount    int64 `json:"vote_count"`
	CommentCount int64 `json:"comment_count"`
}

// FromModelToUserProfile converts a User model to its public profile shape.
func FromModelToUserProfile(user *models.User) *UserProfileResponse {
	return &UserProfileResponse{
		ID:              user.ID,
		Username:        user.Username,
		Nickname:        user.Nickname,
		ProfileImageURL: user.ProfileImageURL,
		Bio:             user.Bio,
		Location:        user.Location,
		Website:         user.Website,
		Provider:        user.Provider,
		CreatedAt:       user.CreatedAt,
	}
}
