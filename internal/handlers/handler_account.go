package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kopkas/coopledger/internal/core/domain"
	portssvc "github.com/kopkas/coopledger/internal/core/ports/services"
	"github.com/kopkas/coopledger/internal/dto"
	"github.com/kopkas/coopledger/internal/middleware"
)

// accountHandler handles HTTP requests related to the chart of accounts.
type accountHandler struct {
	accountService portssvc.AccountSvcFacade
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(accountService portssvc.AccountSvcFacade) *accountHandler {
	return &accountHandler{accountService: accountService}
}

// createAccount godoc
// @Summary Create an account
// @Description Creates a new account in the tenant's chart of accounts
// @Tags accounts
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param account body dto.CreateAccountRequest true "Account details"
// @Success 201 {object} dto.AccountResponse "Created account"
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 409 {object} map[string]string "Duplicate account code"
// @Router /tenants/{tenantID}/accounts [post]
func (h *accountHandler) createAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), tenantID, req, creatorUserID)
	if err != nil {
		respondServiceError(c, logger, err, "create account")
		return
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

// getAccount godoc
// @Summary Get an account by code
// @Description Retrieves one account from the tenant's chart of accounts
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param accountCode path string true "Account code"
// @Success 200 {object} dto.AccountResponse "Account"
// @Failure 404 {object} map[string]string "Account not found"
// @Router /tenants/{tenantID}/accounts/{accountCode} [get]
func (h *accountHandler) getAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	code := c.Param("accountCode")

	account, err := h.accountService.GetAccountByCode(c.Request.Context(), tenantID, code)
	if err != nil {
		respondServiceError(c, logger, err, "get account")
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// listAccounts godoc
// @Summary List accounts
// @Description Lists the tenant's accounts, optionally filtered by type and activity
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param type query string false "Account type filter (ASSET, LIABILITY, EQUITY, INCOME, EXPENSE)"
// @Param includeInactive query bool false "Include deactivated accounts"
// @Success 200 {object} dto.ListAccountsResponse "Accounts"
// @Failure 400 {object} map[string]string "Invalid account type"
// @Router /tenants/{tenantID}/accounts [get]
func (h *accountHandler) listAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	var accountType *domain.AccountType
	if t := c.Query("type"); t != "" {
		at := domain.AccountType(t)
		if !domain.ValidAccountType(at) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid account type: " + t})
			return
		}
		accountType = &at
	}
	activeOnly := c.Query("includeInactive") != "true"

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), tenantID, accountType, activeOnly)
	if err != nil {
		respondServiceError(c, logger, err, "list accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// searchAccounts godoc
// @Summary Search accounts
// @Description Finds accounts matching the free text against code, name and category
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param q query string true "Search text"
// @Success 200 {object} dto.ListAccountsResponse "Matching accounts"
// @Router /tenants/{tenantID}/accounts/search [get]
func (h *accountHandler) searchAccounts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")

	text := c.Query("q")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	accounts, err := h.accountService.SearchAccounts(c.Request.Context(), tenantID, text)
	if err != nil {
		respondServiceError(c, logger, err, "search accounts")
		return
	}
	c.JSON(http.StatusOK, dto.ListAccountsResponse{Accounts: dto.ToAccountResponses(accounts)})
}

// updateAccount godoc
// @Summary Update an account
// @Description Applies partial updates to the account identified by its code
// @Tags accounts
// @Accept json
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param accountCode path string true "Account code"
// @Param account body dto.UpdateAccountRequest true "Fields to update"
// @Success 200 {object} dto.AccountResponse "Updated account"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Duplicate code, or code change on an account referenced by journal lines"
// @Router /tenants/{tenantID}/accounts/{accountCode} [put]
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	code := c.Param("accountCode")

	var req dto.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateAccount", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	existing, err := h.accountService.GetAccountByCode(c.Request.Context(), tenantID, code)
	if err != nil {
		respondServiceError(c, logger, err, "update account")
		return
	}

	account, err := h.accountService.UpdateAccount(c.Request.Context(), tenantID, existing.AccountID, req, userID)
	if err != nil {
		respondServiceError(c, logger, err, "update account")
		return
	}

	logger.Info("Account updated", slog.String("account_id", account.AccountID))
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

// deactivateAccount godoc
// @Summary Deactivate an account
// @Description Marks the account inactive; accounts referenced by journal lines cannot be deactivated
// @Tags accounts
// @Produce json
// @Param tenantID path string true "Tenant ID"
// @Param accountCode path string true "Account code"
// @Success 204 "Account deactivated"
// @Failure 404 {object} map[string]string "Account not found"
// @Failure 409 {object} map[string]string "Account is referenced by journal lines"
// @Router /tenants/{tenantID}/accounts/{accountCode} [delete]
func (h *accountHandler) deactivateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	tenantID := c.Param("tenantID")
	code := c.Param("accountCode")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	existing, err := h.accountService.GetAccountByCode(c.Request.Context(), tenantID, code)
	if err != nil {
		respondServiceError(c, logger, err, "deactivate account")
		return
	}

	if err := h.accountService.DeactivateAccount(c.Request.Context(), tenantID, existing.AccountID, userID); err != nil {
		respondServiceError(c, logger, err, "deactivate account")
		return
	}

	logger.Info("Account deactivated", slog.String("account_id", existing.AccountID), slog.String("code", code))
	c.Status(http.StatusNoContent)
}

// registerAccountRoutes registers account specific routes.
func registerAccountRoutes(group *gin.RouterGroup, accountService portssvc.AccountSvcFacade) {
	h := newAccountHandler(accountService)

	accounts := group.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/search", h.searchAccounts)
		accounts.GET("/:accountCode", h.getAccount)
		accounts.PUT("/:accountCode", h.updateAccount)
		accounts.DELETE("/:accountCode", h.deactivateAccount)
	}
}
