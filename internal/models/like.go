package models

import "time"

// Like endorses either a game or a comment, never both and never
// neither (enforced by the chk_likes_target constraint). The two
// partial unique indexes cap one like per user per target; Postgres
// treats NULLs as distinct so the unused column does not collide.
type Like struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_likes_user_game;uniqueIndex:idx_likes_user_comment" json:"user_id"`
	GameID    *int64    `gorm:"uniqueIndex:idx_likes_user_game;index;check:chk_likes_target,(game_id IS NULL) <> (comment_id IS NULL)" json:"game_id,omitempty"`
	CommentID *int64    `gorm:"uniqueIndex:idx_likes_user_comment;index" json:"comment_id,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	User    User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Game    *Game    `gorm:"foreignKey:GameID;constraint:OnDelete:CASCADE" json:"-"`
	Comment *Comment `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Like) TableName() string {
	return "likes"
}

// NewGameLike builds a like pointing at a game.
func NewGameLike(userID, gameID int64) *Like {
	return &Like{UserID: userID, GameID: &gameID}
}

// NewCommentLike builds a like pointing at a comment.
func NewCommentLike(userID, commentID int64) *Like {
	return &Like{UserID: userID, CommentID: &commentID}
}
