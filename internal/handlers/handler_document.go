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

// documentHandler handles HTTP requests related to documents and their tax
// details.
type documentHandler struct {
	documentService portssvc.DocumentSvcFacade
}

// newDocumentHandler creates a new documentHandler.
func newDocumentHandler(ds portssvc.DocumentSvcFacade) *documentHandler {
	return &documentHandler{
		documentService: ds,
	}
}

// registerDocumentRoutes registers document routes nested under a company.
func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvcFacade) {
	h := newDocumentHandler(documentService)

	documents := rg.Group("/:companyID/documents")
	{
		documents.POST("", h.createDocument)
		documents.GET("", h.listDocuments)
		documents.GET("/:documentID", h.getDocumentByID)
		documents.PUT("/:documentID", h.updateDocument)
		documents.POST("/:documentID/post", h.postDocument)
		documents.POST("/:documentID/recompute", h.recomputeTaxDetails)
	}
}

// respondDocumentError maps service errors to HTTP responses shared by the
// document endpoints.
func respondDocumentError(c *gin.Context, logger *slog.Logger, err error, action string) {
	switch {
	case errors.Is(err, apperrors.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Insufficient company role"})
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Document not found"})
	case errors.Is(err, apperrors.ErrStaleTaxDetails):
		c.JSON(http.StatusConflict, ErrorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrConfiguration), errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to " + action})
	}
}

func toRecomputeResponse(result *portssvc.RecomputeResult) dto.RecomputeDocumentResponse {
	return dto.RecomputeDocumentResponse{
		Document:          dto.ToGetDocumentResponse(&result.Document, result.Lines, result.Details),
		Warnings:          result.Warnings,
		ToleranceExceeded: result.ToleranceExceeded,
	}
}

// createDocument godoc
// @Summary Create a document
// @Description Creates a draft document and computes its tax details
// @Tags documents
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param document body dto.CreateDocumentRequest true "Document details"
// @Success 201 {object} dto.RecomputeDocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input or tax configuration"
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/documents [post]
func (h *documentHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.documentService.CreateDocument(c.Request.Context(), companyID, req, userID)
	if err != nil {
		respondDocumentError(c, logger, err, "create document")
		return
	}

	c.JSON(http.StatusCreated, toRecomputeResponse(result))
}

// listDocuments godoc
// @Summary List a company's documents
// @Description Retrieves documents ordered by document date, newest first
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param limit query int false "Max documents to return" default(20)
// @Param offset query int false "Documents to skip" default(0)
// @Success 200 {object} dto.ListDocumentsResponse
// @Failure 403 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/documents [get]
func (h *documentHandler) listDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var params dto.ListDocumentsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	documents, err := h.documentService.ListDocuments(c.Request.Context(), companyID, params, userID)
	if err != nil {
		respondDocumentError(c, logger, err, "list documents")
		return
	}

	c.JSON(http.StatusOK, dto.ToListDocumentsResponse(documents))
}

// getDocumentByID godoc
// @Summary Get a document by ID
// @Description Retrieves a document with its lines and tax details
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.GetDocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/documents/{documentID} [get]
func (h *documentHandler) getDocumentByID(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	document, lines, details, err := h.documentService.GetDocumentByID(c.Request.Context(), companyID, documentID, userID)
	if err != nil {
		respondDocumentError(c, logger, err, "retrieve document")
		return
	}

	c.JSON(http.StatusOK, dto.ToGetDocumentResponse(document, lines, details))
}

// updateDocument godoc
// @Summary Update a draft document
// @Description Replaces a draft document's fields and lines, and recomputes its tax details
// @Tags documents
// @Accept json
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Param document body dto.UpdateDocumentRequest true "Fields to update"
// @Success 200 {object} dto.RecomputeDocumentResponse
// @Failure 400 {object} ErrorResponse "Invalid input or document not in draft"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/documents/{documentID} [put]
func (h *documentHandler) updateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.UpdateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	result, err := h.documentService.UpdateDocument(c.Request.Context(), companyID, documentID, req, userID)
	if err != nil {
		respondDocumentError(c, logger, err, "update document")
		return
	}

	c.JSON(http.StatusOK, toRecomputeResponse(result))
}

// postDocument godoc
// @Summary Post a document
// @Description Moves a draft document to POSTED, freezing its tax details
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Success 204 "No Content"
// @Failure 400 {object} ErrorResponse "Document is not in draft"
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/documents/{documentID}/post [post]
func (h *documentHandler) postDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	if err := h.documentService.PostDocument(c.Request.Context(), companyID, documentID, userID); err != nil {
		respondDocumentError(c, logger, err, "post document")
		return
	}

	c.Status(http.StatusNoContent)
}

// recomputeTaxDetails godoc
// @Summary Recompute a document's tax details
// @Description Rebuilds tax details from the document's current lines. A posted document is only touched when force is set; if its details would change without force the request fails with a conflict.
// @Tags documents
// @Produce json
// @Param companyID path string true "Company ID"
// @Param documentID path string true "Document ID"
// @Param force query bool false "Replace details even on a posted document" default(false)
// @Success 200 {object} dto.RecomputeDocumentResponse
// @Failure 403 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Posted document details would change"
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /companies/{companyID}/documents/{documentID}/recompute [post]
func (h *documentHandler) recomputeTaxDetails(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID := c.Param("companyID")
	documentID := c.Param("documentID")

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	force := c.Query("force") == "true"

	result, err := h.documentService.RecomputeTaxDetails(c.Request.Context(), companyID, documentID, force, userID)
	if err != nil {
		respondDocumentError(c, logger, err, "recompute tax details")
		return
	}

	c.JSON(http.StatusOK, toRecomputeResponse(result))
}
