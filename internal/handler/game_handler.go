package handler

import (
	"net/http"

	"balancehub/internal/dto"
	"balancehub/internal/middleware"
	"balancehub/internal/service"

	"github.com/gin-gonic/gin"
)

type GameHandler struct {
	gameService service.GameService
	authService service.AuthService
}

func NewGameHandler(gameService service.GameService, authService service.AuthService) *GameHandler {
	return &GameHandler{
		gameService: gameService,
		authService: authService,
	}
}

// RegisterRoutes registers game routes. Reads resolve the viewer when
// a token is present; writes require one.
func (h *GameHandler) RegisterRoutes(router *gin.RouterGroup) {
	games := router.Group("/games")

	read := games.Group("", middleware.OptionalAuthMiddleware(h.authService))
	{
		read.GET("", h.List)
		read.GET("/search", h.Search)
		read.GET("/:game_id", h.Get)
		read.GET("/:game_id/info", h.GetInfo)
	}

	write := games.Group("", middleware.AuthMiddleware(h.authService))
	{
		write.POST("", h.Create)
		write.PUT("/:game_id", h.Update)
		write.DELETE("/:game_id", h.Delete)
	}
}

// List pages games under a sort order
// GET /api/games?sort=best&period=weekly&page=1&page_size=20
func (h *GameHandler) List(c *gin.Context) {
	page, pageSize := pagination(c)
	sort := service.GameSort(c.DefaultQuery("sort", "latest"))

	period, err := service.ParseRankingPeriod(c.Query("period"))
	if err != nil {
		respondError(c, err)
		return
	}

	result, err := h.gameService.List(c.Request.Context(), sort, period, page, pageSize, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Search finds games by title keyword
// GET /api/games/search?q=coffee&page=1
func (h *GameHandler) Search(c *gin.Context) {
	page, pageSize := pagination(c)

	result, err := h.gameService.Search(c.Request.Context(), c.Query("q"), page, pageSize, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Get returns one game with stats and counts the view
// GET /api/games/:game_id
func (h *GameHandler) Get(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	game, err := h.gameService.Get(c.Request.Context(), gameID, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// GetInfo returns one game without counting a view
// GET /api/games/:game_id/info
func (h *GameHandler) GetInfo(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	game, err := h.gameService.GetInfo(c.Request.Context(), gameID, middleware.ViewerID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// Create adds a new game authored by the caller
// POST /api/games
func (h *GameHandler) Create(c *gin.Context) {
	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, game)
}

// Update edits a game's title or description, author only
// PUT /api/games/:game_id
func (h *GameHandler) Update(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.UpdateGameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	game, err := h.gameService.Update(c.Request.Context(), gameID, userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, game)
}

// Delete removes a game, author or admin only
// DELETE /api/games/:game_id
func (h *GameHandler) Delete(c *gin.Context) {
	gameID, ok := parseIDParam(c, "game_id")
	if !ok {
		return
	}

	userID, exists := middleware.UserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.gameService.Delete(c.Request.Context(), gameID, userID, middleware.IsAdmin(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "game deleted successfully"})
}
