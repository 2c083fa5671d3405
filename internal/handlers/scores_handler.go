package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"livescore/internal/services"
)

// ScoresHandler — прокси к TheSportsDB в формате карточек фронтенда.
type ScoresHandler struct {
	scores services.ScoresService
}

func NewScoresHandler(scores services.ScoresService) *ScoresHandler {
	return &ScoresHandler{scores: scores}
}

func (h *ScoresHandler) respond(c *gin.Context, area string, data any, err error) {
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sport is required"})
			return
		}
		log.Printf("[scores][%s] upstream error: %v", area, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "sports data unavailable"})
		return
	}
	c.JSON(http.StatusOK, data)
}

// @Summary      Today's events
// @Tags         Scores
// @Produce      json
// @Success      200  {array}  models.Match
// @Router       /api/scores/events/today [get]
func (h *ScoresHandler) TodayEvents(c *gin.Context) {
	matches, err := h.scores.TodayEvents()
	h.respond(c, "today", matches, err)
}

// @Summary      Live events
// @Tags         Scores
// @Produce      json
// @Success      200  {array}  models.Match
// @Router       /api/scores/events/live [get]
func (h *ScoresHandler) LiveEvents(c *gin.Context) {
	matches, err := h.scores.LiveEvents()
	h.respond(c, "live", matches, err)
}

// @Summary      Events by sport and date
// @Tags         Scores
// @Produce      json
// @Param        sport  query  string  true   "Sport name"
// @Param        date   query  string  false  "Date YYYY-MM-DD, defaults to today"
// @Success      200  {array}  models.Match
// @Router       /api/scores/events [get]
func (h *ScoresHandler) Events(c *gin.Context) {
	matches, err := h.scores.EventsBySport(c.Query("sport"), c.Query("date"))
	h.respond(c, "events", matches, err)
}

// @Summary      Leagues, optionally filtered by sport
// @Tags         Scores
// @Produce      json
// @Param        sport  query  string  false  "Sport name"
// @Success      200  {array}  models.League
// @Router       /api/scores/leagues [get]
func (h *ScoresHandler) Leagues(c *gin.Context) {
	leagues, err := h.scores.Leagues(c.Query("sport"))
	h.respond(c, "leagues", leagues, err)
}
