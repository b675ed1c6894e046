package models

import "time"

// Comment depth values. The tree is exactly two levels deep: top-level
// comments (depth 0) and replies to them (depth 1).
const (
	DepthTopLevel = 0
	DepthReply    = 1
)

type Comment struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	GameID          int64     `gorm:"not null;index" json:"game_id"`
	AuthorID        int64     `gorm:"not null;index" json:"author_id"`
	Content         string    `gorm:"type:text;not null" json:"content"`
	ParentCommentID *int64    `gorm:"index" json:"parent_comment_id,omitempty"`
	Depth           int       `gorm:"not null;default:0" json:"depth"`
	CreatedAt       time.Time `gorm:"index" json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Author User     `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"-"`
	Game   Game     `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
	Parent *Comment `gorm:"foreignKey:ParentCommentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Comment) TableName() string {
	return "comments"
}

// IsReply reports whether the comment sits at depth 1.
func (c *Comment) IsReply() bool {
	return c.ParentCommentID != nil
}
