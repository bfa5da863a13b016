package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/dto"
	"github.com/kopkas/coopledger/internal/middleware"
)

// settingsHandler handles HTTP requests for per-tenant ledger settings.
type settingsHandler struct {
	settingsService portssvc.SettingsSvcFacade
}

// newSettingsHandler creates a new settingsHandler.
func newSettingsHandler(settingsService portssvc.SettingsSvcFacade) *settingsHandler {
	return &settingsHandler{settingsService: settingsService}
}

// setAccountMapping godoc
// @Summary Bind an account role to an account
// @Description Maps a posting role (cash, loan_receivable, interest_income, member_savings) to an account code
// @Tags settings
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param mapping body dto.SetAccountMappingRequest true "Role and account code"
// @Success 204 "Mapping saved"
// @Failure 400 {object} map[string]string "Unknown role"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /tenants/{tenantID}/settings/account-mappings [put]
func (h *settingsHandler) setAccountMapping(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.SetAccountMappingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for setAccountMapping", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	if err := h.settingsService.SetAccountMapping(c.Request.Context(), tenantID, req.Role, req.AccountCode, userID); err != nil {
		respondServiceError(c, logger, err, "set account mapping")
		return
	}

	logger.Info("Account mapping saved",
		slog.String("role", string(req.Role)),
		slog.String("account_code", req.AccountCode))
	c.Status(http.StatusNoContent)
}

// getAccountMappings godoc
// @Summary List account role mappings
// @Description Returns all posting role mappings for the tenant
// @Tags settings
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Success 200 {object} map[string]string "Role to account code"
// @Router /tenants/{tenantID}/settings/account-mappings [get]
func (h *settingsHandler) getAccountMappings(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	mappings, err := h.settingsService.GetAccountMappings(c.Request.Context(), tenantID)
	if err != nil {
		respondServiceError(c, logger, err, "get account mappings")
		return
	}
	c.JSON(http.StatusOK, mappings)
}

// registerSettingsRoutes registers settings specific routes.
func registerSettingsRoutes(group *gin.RouterGroup, settingsService portssvc.SettingsSvcFacade) {
	h := newSettingsHandler(settingsService)

	settings := group.Group("/settings")
	{
		settings.PUT("/account-mappings", h.setAccountMapping)
		settings.GET("/account-mappings", h.getAccountMappings)
	}
}
