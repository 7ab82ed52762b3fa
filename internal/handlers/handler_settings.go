package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/isp_bookkeeping_app/internal/core/ports/services"
	"github.com/SscSPs/isp_bookkeeping_app/internal/dto"
	"github.com/SscSPs/isp_bookkeeping_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

// RegisterSettingsRoutes registers the company settings routes.
func RegisterSettingsRoutes(rg *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := &settingsHandler{settingsService: settingsService}

	rg.GET("/settings", h.getSettings)
	rg.PUT("/settings", h.saveSettings)
}

// getSettings godoc
// @Summary Get company settings
// @Tags settings
// @Produce json
// @Success 200 {object} domain.CompanySettings
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [get]
func (h *settingsHandler) getSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	settings, err := h.settingsService.GetSettings(c.Request.Context())
	if err != nil {
		respondServiceError(c, logger, err, "retrieve settings")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// saveSettings godoc
// @Summary Replace company settings
// @Description Overwrites the whole settings record.
// @Tags settings
// @Accept json
// @Produce json
// @Param settings body dto.UpdateSettingsRequest true "Company settings"
// @Success 200 {object} domain.CompanySettings
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /settings [put]
func (h *settingsHandler) saveSettings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for SaveSettings", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	settings, err := h.settingsService.SaveSettings(c.Request.Context(), req)
	if err != nil {
		respondServiceError(c, logger, err, "save settings")
		return
	}

	logger.Info("Company settings saved")
	c.JSON(http.StatusOK, settings)
}
