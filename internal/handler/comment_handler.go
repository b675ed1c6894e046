package handler

import (
	"net/http"

	"balancehub/internal/dto"
	"balancehub/internal/middleware"
	"balancehub/internal/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
	authService    service.AuthService
}

func NewCommentHandler(commentService service.CommentService, authService service.AuthService) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		authService:    authService,
	}
}

// RegisterRoutes registers comment routes under games and a flat group
// for editing by comment id.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup) {
	gameComments := router.Group("/games/:game_id/comments")
	{
		gameComments.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListForGame)
		gameComments.POST("", middleware.AuthMiddleware(h.authService), h.Create)
	}

	comments := router.Group("/comments")
	{
		comments.GET("/:comment_id", middleware.OptionalAuthMiddleware(h.authService), h.Get)
		comments.GET("/:comment_id/replies", middleware.OptionalAuthMiddleware(h.authService), h.ListReplies)

		authed := comments.Group("", middleware.AuthMiddleware(h.authService))
		authed.PUT("/:comment_id", h.Update)
		authed.DELETE("/:comment_id", h.Delete)
	}
}

// ListForGame pages a game's comment threads
// GET /api/games/:game_id/comments?page=1&page_size=20
func (h *CommentHandler) ListForGame(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	result, err := h.commentService.ListForGame(c.Request.Context(), gameID, page, pageSize, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Create adds a comment or a reply to a top-level comment
// POST /api/games/:game_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Create(c.Request.Context(), userID, gameID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// Get returns a single comment with its like decorations
// GET /api/comments/:comment_id
func (h *CommentHandler) Get(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.Get(c.Request.Context(), commentID, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// ListReplies returns the replies under one top-level comment
// GET /api/comments/:comment_id/replies
func (h *CommentHandler) ListReplies(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	replies, err := h.commentService.ListReplies(c.Request.Context(), commentID, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, replies)
}

// Update edits a comment's content, author only
// PUT /api/comments/:comment_id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	comment, err := h.commentService.Update(c.Request.Context(), commentID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, comment)
}

// Delete removes a comment, author or admin only
// DELETE /api/comments/:comment_id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := parseIDParam(c, "comment_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), commentID, userID, middleware.IsAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment deleted successfully"})
}
