package models

import "time"

// Game is an "A vs B" balance game post. Votes, comments and likes
// reference it by id; deleting a game cascades to all three.
type Game struct {
	ID                 int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title              string    `gorm:"size:200;not null" json:"title"`
	Description        string    `gorm:"type:text" json:"description"`
	OptionA            string    `gorm:"size:100;not null" json:"option_a"`
	OptionADescription string    `gorm:"type:text" json:"option_a_description"`
	OptionB            string    `gorm:"size:100;not null" json:"option_b"`
	OptionBDescription string    `gorm:"type:text" json:"option_b_description"`
	ViewCount          int64     `gorm:"not null;default:0" json:"view_count"`
	AuthorID           int64     `gorm:"not null;index" json:"author_id"`
	CreatedAt          time.Time `gorm:"index" json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`

	Author User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Game) TableName() string {
	return "games"
}
