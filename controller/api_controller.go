package controller

import (
	"errors"
	"net/http"

	"github.com/defamed-sol/github-analyzer-bot/config"
	"github.com/defamed-sol/github-analyzer-bot/model"
	"github.com/defamed-sol/github-analyzer-bot/service"
	"github.com/gin-gonic/gin"
)

type APIController interface {
	GetProfileAnalysis(ctx *gin.Context)
}

type apiController struct {
	analyzerService service.AnalyzerService
	config          config.Config
}

func NewAPIController(config config.Config, service service.AnalyzerService) APIController {
	return apiController{
		analyzerService: service,
		config:          config,
	}
}

func (s apiController) GetProfileAnalysis(c *gin.Context) {
	username := c.Param("username")

	if username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username is required"})
		return
	}

	result, err := s.analyzerService.Analyze(c.Request.Context(), username)

	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		if errors.Is(err, model.ErrRateLimitReached) {
			c.JSON(http.StatusTooManyRequests, model.NewAPIError(err))
			return
		}

		c.JSON(http.StatusInternalServerError, model.NewAPIError(err))
		return
	}

	c.JSON(http.StatusOK, result)
}
