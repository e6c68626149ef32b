package controller

import (
	"ctchen222/Tic-Tac-Toe-Online/internal/api/response"
	"ctchen222/Tic-Tac-Toe-Online/internal/api/service"
	"ctchen222/Tic-Tac-Toe-Online/pkg/proto"
	"net/http"

	"github.com/gin-gonic/gin"
)

// MatchController handles the bootstrap HTTP requests.
type MatchController struct {
	matchService service.MatchService
}

// NewMatchController creates a new MatchController.
func NewMatchController(matchService service.MatchService) *MatchController {
	return &MatchController{
		matchService: matchService,
	}
}

// CreateMatch handles POST /create_game.
func (mc *MatchController) CreateMatch(c *gin.Context) {
	var req proto.PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, err := mc.matchService.CreateMatch(c.Request.Context(), *req.PlayerName)
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.JSON(c, http.StatusOK, resp)
}

// JoinMatch handles POST /join_game/:id. A full or unknown match is still a 200
// with an error body.
func (mc *MatchController) JoinMatch(c *gin.Context) {
	var req proto.PlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorResponse(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	resp, err := mc.matchService.JoinMatch(c.Request.Context(), c.Param("id"), *req.PlayerName)
	if err != nil {
		response.ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	response.JSON(c, http.StatusOK, resp)
}
