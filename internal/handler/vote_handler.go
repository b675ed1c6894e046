package handler

import (
	"net/http"

	"balancehub/internal/dto"
	"balancehub/internal/middleware"
	"balancehub/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	voteService service.VoteService
	authService service.AuthService
}

func NewVoteHandler(voteService service.VoteService, authService service.AuthService) *VoteHandler {
	return &VoteHandler{
		voteService: voteService,
		authService: authService,
	}
}

// RegisterRoutes registers vote routes under games
func (h *VoteHandler) RegisterRoutes(router *gin.RouterGroup) {
	votes := router.Group("/games/:game_id/votes")
	{
		votes.GET("/stats", h.Stats)

		authed := votes.Group("", middleware.AuthMiddleware(h.authService))
		authed.POST("", h.Cast)
		authed.GET("/me", h.Status)
	}
}

// Cast casts, switches, or cancels the caller's vote
// POST /api/games/:game_id/votes
func (h *VoteHandler) Cast(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CastVoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.voteService.Cast(c.Request.Context(), userID, gameID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Status returns the caller's current vote and the game's counts
// GET /api/games/:game_id/votes/me
func (h *VoteHandler) Status(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	status, err := h.voteService.Status(c.Request.Context(), userID, gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

// Stats returns per-option vote counts for a game
// GET /api/games/:game_id/votes/stats
func (h *VoteHandler) Stats(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	stats, err := h.voteService.Stats(c.Request.Context(), gameID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
