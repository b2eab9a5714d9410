package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fleetops/fleet_ledger_app/internal/apperrors"
	portssvc "github.com/fleetops/fleet_ledger_app/internal/core/ports/services"
	"github.com/fleetops/fleet_ledger_app/internal/dto"
	"github.com/fleetops/fleet_ledger_app/internal/middleware"
)

// methodHandler handles HTTP requests related to revenue channels.
type methodHandler struct {
	methodService portssvc.MethodSvcFacade
}

// newMethodHandler creates a new methodHandler.
func newMethodHandler(ms portssvc.MethodSvcFacade) *methodHandler {
	return &methodHandler{
		methodService: ms,
	}
}

// registerMethodRoutes registers routes related to methods.
func registerMethodRoutes(rg *gin.RouterGroup, methodService portssvc.MethodSvcFacade) {
	h := newMethodHandler(methodService)

	methods := rg.Group("/methods")
	{
		methods.POST("", h.createMethod)
		methods.GET("", h.listMethods)
		methods.GET("/:methodID", h.getMethod)
		methods.PUT("/:methodID", h.updateMethod)
	}
}

func (h *methodHandler) createMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	var req dto.CreateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	method, err := h.methodService.CreateMethod(c.Request.Context(), companyID, req, callerUserID(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			logger.Warn("Validation error creating method", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		} else {
			logger.Error("Failed to create method", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create method"})
		}
		return
	}

	logger.Info("Method created", slog.String("method_id", method.MethodID))
	c.JSON(http.StatusCreated, dto.ToMethodResponse(method))
}

func (h *methodHandler) getMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	method, err := h.methodService.GetMethodByID(c.Request.Context(), companyID, c.Param("methodID"))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Method not found"})
		} else {
			logger.Error("Failed to get method", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve method"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMethodResponse(method))
}

func (h *methodHandler) listMethods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	methods, err := h.methodService.ListMethods(c.Request.Context(), companyID)
	if err != nil {
		logger.Error("Failed to list methods", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list methods"})
		return
	}

	c.JSON(http.StatusOK, dto.ToListMethodResponse(methods))
}

func (h *methodHandler) updateMethod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Company ID missing"})
		return
	}

	var req dto.UpdateMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateMethod", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	method, err := h.methodService.UpdateMethod(c.Request.Context(), companyID, c.Param("methodID"), req, callerUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Method not found"})
		case errors.Is(err, apperrors.ErrValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to update method", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update method"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToMethodResponse(method))
}
