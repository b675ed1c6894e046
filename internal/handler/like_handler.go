package handler

import (
	"net/http"

	"balancehub/internal/middleware"
	"balancehub/internal/service"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	likeService service.LikeService
	authService service.AuthService
}

func NewLikeHandler(likeService service.LikeService, authService service.AuthService) *LikeHandler {
	return &LikeHandler{
		likeService: likeService,
		authService: authService,
	}
}

// RegisterRoutes registers like toggles for games and comments
func (h *LikeHandler) RegisterRoutes(router *gin.RouterGroup) {
	gameLikes := router.Group("/games/:game_id/likes", middleware.AuthMiddleware(h.authService))
	{
		gameLikes.POST("", h.ToggleGameLike)
		gameLikes.GET("/me", h.GameLikeStatus)
	}

	commentLikes := router.Group("/comments/:comment_id/likes", middleware.AuthMiddleware(h.authService))
	{
		commentLikes.POST("", h.ToggleCommentLike)
		commentLikes.GET("/me", h.CommentLikeStatus)
	}
}

// ToggleGameLike flips the caller's like on a game
// POST /api/games/:game_id/likes
func (h *LikeHandler) ToggleGameLike(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.likeService.ToggleGameLike(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GameLikeStatus reports whether the caller likes a game
// GET /api/games/:game_id/likes/me
func (h *LikeHandler) GameLikeStatus(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.likeService.GameLikeStatus(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ToggleCommentLike flips the caller's like on a comment
// POST /api/comments/:comment_id/likes
func (h *LikeHandler) ToggleCommentLike(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.likeService.ToggleCommentLike(c.Request.Context(), userID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// CommentLikeStatus reports whether the caller likes a comment
// GET /api/comments/:comment_id/likes/me
func (h *LikeHandler) CommentLikeStatus(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	result, err := h.likeService.CommentLikeStatus(c.Request.Context(), userID, commentID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
