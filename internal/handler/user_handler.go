package handler

import (
	"net/http"

	"balancehub/internal/dto"
	"balancehub/internal/middleware"
	"balancehub/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
	gameService service.GameService
	voteService service.VoteService
	authService service.AuthService
}

func NewUserHandler(
	userService service.UserService,
	gameService service.GameService,
	voteService service.VoteService,
	authService service.AuthService,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		gameService: gameService,
		voteService: voteService,
		authService: authService,
	}
}

// RegisterRoutes registers user profile routes
func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.GET("/:user_id", h.GetProfile)
		users.GET("/:user_id/stats", h.GetStats)
		users.GET("/:user_id/games", middleware.OptionalAuthMiddleware(h.authService), h.ListGames)
		users.GET("/:user_id/comments", middleware.OptionalAuthMiddleware(h.authService), h.ListComments)
	}

	me := router.Group("/users/me", middleware.AuthMiddleware(h.authService))
	{
		me.GET("", h.GetOwnProfile)
		me.PUT("", h.UpdateProfile)
		me.DELETE("", h.DeleteAccount)
		me.GET("/votes", h.ListVotes)
	}
}

// GetProfile returns a user's public profile
// GET /api/users/:user_id
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// GetStats returns a user's activity counters
// GET /api/users/:user_id/stats
func (h *UserHandler) GetStats(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}

	stats, err := h.userService.Stats(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// ListGames pages a user's authored games
// GET /api/users/:user_id/games?page=1&page_size=20
func (h *UserHandler) ListGames(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	result, err := h.gameService.ListByAuthor(c.Request.Context(), userID, page, pageSize, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ListComments pages a user's comments
// GET /api/users/:user_id/comments?page=1&page_size=20
func (h *UserHandler) ListComments(c *gin.Context) {
	userID, ok := parseIDParam(c, "user_id")
	if !ok {
		return
	}
	page, pageSize := pagination(c)

	result, err := h.userService.ListComments(c.Request.Context(), userID, page, pageSize, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetOwnProfile returns the caller's profile
// GET /api/users/me
func (h *UserHandler) GetOwnProfile(c *gin.Context) {
	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	profile, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile edits the caller's profile fields
// PUT /api/users/me
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// DeleteAccount removes the caller's account and their content
// DELETE /api/users/me
func (h *UserHandler) DeleteAccount(c *gin.Context) {
	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.userService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "account deleted successfully"})
}

// ListVotes pages the caller's vote history
// GET /api/users/me/votes?page=1&page_size=20
func (h *UserHandler) ListVotes(c *gin.Context) {
	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	page, pageSize := pagination(c)

	result, err := h.voteService.ListByUser(c.Request.Context(), userID, page, pageSize)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
