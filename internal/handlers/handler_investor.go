package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type investorHandler struct {
	investorService portssvc.InvestorSvcFacade
}

// RegisterInvestorRoutes registers routes related to investors.
func RegisterInvestorRoutes(rg *gin.RouterGroup, investorService portssvc.InvestorSvcFacade) {
	h := &investorHandler{investorService: investorService}

	investors := rg.Group("/investors")
	{
		investors.GET("", h.listInvestors)
		investors.POST("", h.addInvestor)
		investors.DELETE("/:id", h.removeInvestor)
	}
}

// listInvestors godoc
// @Summary List investors
// @Tags investors
// @Produce json
// @Success 200 {array} dto.InvestorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /investors [get]
func (h *investorHandler) listInvestors(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	investors, err := h.investorService.ListInvestors(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "list investors")
		return
	}

	c.JSON(http.StatusOK, dto.ToListInvestorResponse(investors))
}

// addInvestor godoc
// @Summary Add an investor
// @Description Percentages across investors are not required to sum to 100.
// @Tags investors
// @Accept json
// @Produce json
// @Param investor body dto.CreateInvestorRequest true "Investor details"
// @Success 201 {object} dto.InvestorResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /investors [post]
func (h *investorHandler) addInvestor(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateInvestorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for AddInvestor", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	investor, err := h.investorService.AddInvestor(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "add investor")
		return
	}

	logger.Info("Investor added", slog.String("investor_id", investor.ID))
	c.JSON(http.StatusCreated, dto.ToInvestorResponse(investor))
}

// removeInvestor godoc
// @Summary Remove an investor
// @Tags investors
// @Param id path string true "Investor ID"
// @Success 204 "No Content"
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /investors/{id} [delete]
func (h *investorHandler) removeInvestor(c *gin.Context) {
	investorID := c.Param("id")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("investor_id", investorID))

	if err := h.investorService.RemoveInvestor(c.Request.Context(), investorID); err != nil {
		respondServiceError(c, logger, err, "remove investor")
		return
	}

	logger.Info("Investor removed")
	c.Status(http.StatusNoContent)
}
