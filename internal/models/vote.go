package models

import "time"

// VoteOption is the side of a balance game a user picked.
type VoteOption string

const (
	VoteOptionA VoteOption = "A"
	VoteOptionB VoteOption = "B"
)

// Valid reports whether the option is one of the two allowed sides.
func (o VoteOption) Valid() bool {
	return o == VoteOptionA || o == VoteOptionB
}

// Vote is a user's standing choice for one game. The (user_id, game_id)
// unique index guarantees at most one live vote per user per game.
// Switching sides updates selected_option in place, so CreatedAt keeps
// the time of the first cast.
type Vote struct {
	ID             int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         int64      `gorm:"not null;uniqueIndex:idx_votes_user_game" json:"user_id"`
	GameID         int64      `gorm:"not null;uniqueIndex:idx_votes_user_game;index" json:"game_id"`
	SelectedOption VoteOption `gorm:"type:varchar(1);not null" json:"selected_option"`
	CreatedAt      time.Time  `json:"created_at"`

	User User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Game Game `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Vote) TableName() string {
	return "votes"
}
