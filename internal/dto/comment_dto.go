package dto

import (
	"time"

	"balancehub/internal/models"
)

// CreateCommentRequest: payload for creating a comment. A non-nil
// ParentCommentID makes it a reply; depth is decided server-side.
type CreateCommentRequest struct {
	Content         string `json:"content" binding:"required,min=1,max=1000"`
	ParentCommentID *int64 `json:"parent_comment_id,omitempty"`
}

// UpdateCommentRequest: payload for editing a comment
type UpdateCommentRequest struct {
	Content string `json:"content" binding:"required,min=1,max=1000"`
}

// CommentResponse: a comment with its like counters and, for top-level
// comments in a listing, its replies in chronological order.
type CommentResponse struct {
	ID              int64     `json:"id"`
	GameID          int64     `json:"game_id"`
	AuthorID        int64     `json:"author_id"`
	AuthorUsername  string    `json:"author_username"`
	AuthorNickname  string    `json:"author_nickname"`
	Content         string    `json:"content"`
	ParentCommentID *int64    `json:"parent_comment_id,omitempty"`
	Depth           int       `json:"depth"`
	LikeCount       int64     `json:"like_count"`
	IsLiked         bool      `json:"is_liked"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`

	Replies []CommentResponse `json:"replies,omitempty"`
}

// FromModelToCommentResponse converts a Comment model to its response
// shape. Author must be preloaded.
func FromModelToCommentResponse(comment *models.Comment, likeCount int64, isLiked bool) *CommentResponse {
	return &CommentResponse{
		ID:              comment.ID,
		GameID:          comment.GameID,
		AuthorID:        comment.AuthorID,
		AuthorUsername:  comment.Author.Username,
		AuthorNickname:  comment.Author.Nickname,
		Content:         comment.Content,
		ParentCommentID: comment.ParentCommentID,
		Depth:           comment.Depth,
		LikeCount:       likeCount,
		IsLiked:         isLiked,
		CreatedAt:       comment.CreatedAt,
		UpdatedAt:       comment.UpdatedAt,
	}
}
