package api

import (
	"errors"
	"net/http"

	reqdto "parkhub/internal/handler/dto/request"
	resdto "parkhub/internal/handler/dto/response"
	"parkhub/internal/usecase/commands"
	"parkhub/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotHandler struct {
	lotCommands commands.LotCommands
	lotQueries  queries.LotQueries
}

func NewLotHandler(lotCommands commands.LotCommands, lotQueries queries.LotQueries) *LotHandler {
	return &LotHandler{
		lotCommands: lotCommands,
		lotQueries:  lotQueries,
	}
}

// @Summary Create lot
// @Description Create a parking lot with its initial spots
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateLotRequest true "Lot data"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /lots [post]
func (h *LotHandler) CreateLot(c *gin.Context) {
	var req reqdto.CreateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	id, err := h.lotCommands.CreateLot(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": id.String()})
}

// @Summary Update lot
// @Description Update lot attributes
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.UpdateLotRequest true "Fields to update"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /lots/{id} [patch]
func (h *LotHandler) UpdateLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	var req reqdto.UpdateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.lotCommands.UpdateLot(c.Request.Context(), id, req); err != nil {
		switch {
		case errors.Is(err, commands.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Delete lot
// @Description Delete a lot and its spots while no spot is occupied
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /lots/{id} [delete]
func (h *LotHandler) DeleteLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	if err := h.lotCommands.DeleteLot(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		case errors.Is(err, commands.ErrLotOccupied):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Lot has occupied spots",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Get lot
// @Description Get lot details with spot availability
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {object} resdto.LotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id} [get]
func (h *LotHandler) GetLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	view, err := h.lotQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLotView(view))
}

// @Summary List lots
// @Description List all lots, optionally filtered by name or postal code
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param q query string false "Search query"
// @Success 200 {array} resdto.LotResponse
// @Failure 401 {object} map[string]string
// @Router /lots [get]
func (h *LotHandler) ListLots(c *gin.Context) {
	var (
		views []*queries.LotView
		err   error
	)
	if q := c.Query("q"); q != "" {
		views, err = h.lotQueries.Search(c.Request.Context(), q)
	} else {
		views, err = h.lotQueries.List(c.Request.Context())
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.LotResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromLotView(view)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary List spots
// @Description List the spots of a lot with their status
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} resdto.SpotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/spots [get]
func (h *LotHandler) ListSpots(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	views, err := h.lotQueries.ListSpots(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response := make([]*resdto.SpotResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromSpotView(view)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Add spot
// @Description Add a spot to a lot, growing its capacity
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id}/spots [post]
func (h *LotHandler) AddSpot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	spotID, err := h.lotCommands.AddSpot(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": spotID.String()})
}

// @Summary Delete spot
// @Description Delete an available spot, shrinking the lot's capacity
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Spot ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /spots/{id} [delete]
func (h *LotHandler) DeleteSpot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid spot ID format",
		})
		return
	}

	if err := h.lotCommands.DeleteSpot(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrSpotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Spot not found",
			})
		case errors.Is(err, commands.ErrSpotOccupied):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Spot is occupied",
			})
		case errors.Is(err, commands.ErrLotHasNoCapacity):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Cannot delete the last spot of a lot",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Lot summary
// @Description Per-lot occupancy and revenue report
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.LotSummaryResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/summary [get]
func (h *LotHandler) GetSummary(c *gin.Context) {
	views, err := h.lotQueries.Summary(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.LotSummaryResponse, len(views))
	for i, view := range views {
		response[i] = resdto.FromLotSummaryView(view)
	}

	c.JSON(http.StatusOK, response)
}
