package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/tax_engine_app/internal/apperrors"
	portssvc "github.com/SscSPs/tax_engine_app/internal/core/ports/services"
	"github.com/SscSPs/tax_engine_app/internal/dto"
	"github.com/SscSPs/tax_engine_app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// taxHandler handles HTTP requests related to tax definitions.
type taxHandler struct {
	taxService portssvc.TaxSvcFacade
}

// newTaxHandler creates a new taxHandler.
func newTaxHandler(ts portssvc.TaxSvcFacade) *taxHandler {
	return &taxHandler{
		taxService: ts,
	}
}

// registerTaxRoutes registers tax routes nested under a company.
func registerTaxRoutes(rg *gin.RouterGroup, taxService portssvc.TaxSvcFacade) {
	h := newTaxHandler(taxService)

	taxes := rg.Group("/:companyID/taxes")
	{
		taxes.POST("", h.createTax)
		taxes.GET("", h.listTaxes)
		taxes.GET("/:taxID", h.getTaxByID)
		taxes.PUT("/:taxID", h.updateTax)
		taxes.DELETE("/:taxID", h.deactivateTax)
		taxes.POST("/preview", h.previewTaxes)
	}
}

// respondTaxError maps service errors to HTTP responses shared by the tax
// endpoints.
func respondTaxError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient company role"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Tax not found"})
	case errors.Is(err, apperrors.ErrConfiguration), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

// createTax godoc
// @Summary Create a new tax
// @Description Creates a tax definition with its repartition lines, admin only
// @Tags taxes
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param tax body dto.CreateTaxRequest true "Tax details"
// @Success 201 {object} dto.TaxResponse
// @Failure 400 {object} ErrorResponse "Invalid input or repartition configuration"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/taxes [post]
func (h *taxHandler) createTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	tax, err := h.taxService.CreateTax(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondTaxError(c, logger, err, "create tax")
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaxResponse(tax))
}

// listTaxes godoc
// @Summary List a company's taxes
// @Description Retrieves the active taxes of a company
// @Tags taxes
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Max taxes to return" default(50)
// @Param offset query int false "Taxes to skip" default(0)
// @Success 200 {object} dto.ListTaxesResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/taxes [get]
func (h *taxHandler) listTaxes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListTaxesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	taxes, err := h.taxService.ListTaxes(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondTaxError(c, logger, err, "list taxes")
		return
	}

	c.JSON(http.StatusOK, dto.ToListTaxesResponse(taxes))
}

// getTaxByID godoc
// @Summary Get a tax by ID
// @Description Retrieves a tax with its repartition lines
// @Tags taxes
// @Produce json
// @Param companyID path string true "Company ID"
// @Param taxID path string true "Tax ID"
// @Success 200 {object} dto.TaxResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/taxes/{taxID} [get]
func (h *taxHandler) getTaxByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	taxID := c.Param("taxID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	tax, err := h.taxService.GetTaxByID(c.Request.Context(), companyID, taxID, userID)
	if err != nil {
		respondTaxError(c, logger, err, "retrieve tax")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxResponse(tax))
}

// updateTax godoc
// @Summary Update a tax
// @Description Updates a tax definition and revalidates its configuration, admin only
// @Tags taxes
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param taxID path string true "Tax ID"
// @Param tax body dto.UpdateTaxRequest true "Fields to update"
// @Success 200 {object} dto.TaxResponse
// @Failure 400 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/taxes/{taxID} [put]
func (h *taxHandler) updateTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	taxID := c.Param("taxID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	tax, err := h.taxService.UpdateTax(c.Request.Context(), companyID, taxID, req, userID)
	if err != nil {
		respondTaxError(c, logger, err, "update tax")
		return
	}

	c.JSON(http.StatusOK, dto.ToTaxResponse(tax))
}

// deactivateTax godoc
// @Summary Deactivate a tax
// @Description Soft deletes a tax so documents keep their history, admin only
// @Tags taxes
// @Produce json
// @Param companyID path string true "Company ID"
// @Param taxID path string true "Tax ID"
// @Success 204 "No Content"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/taxes/{taxID} [delete]
func (h *taxHandler) deactivateTax(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	taxID := c.Param("taxID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.taxService.DeactivateTax(c.Request.Context(), companyID, taxID, userID); err != nil {
		respondTaxError(c, logger, err, "deactivate tax")
		return
	}

	c.Status(http.StatusNoContent)
}

// previewTaxes godoc
// @Summary Preview a tax computation
// @Description Computes taxes over a single amount without creating a document
// @Tags taxes
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param preview body dto.PreviewTaxRequest true "Amount and taxes to apply"
// @Success 200 {object} dto.PreviewTaxResponse
// @Failure 400 {object} ErrorResponse "Invalid input or tax configuration"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/taxes/preview [post]
func (h *taxHandler) previewTaxes(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.PreviewTaxRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	preview, err := h.taxService.PreviewTaxes(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondTaxError(c, logger, err, "preview taxes")
		return
	}

	c.JSON(http.StatusOK, preview)
}
