package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// companyIDKey is the key used to store the caller's company ID in contexts.
const companyIDKey = contextKey("companyID")

// CompanyIDHeader names the header carrying the opaque tenant identifier.
// Every record is scoped by this value; the engine never interprets it.
const CompanyIDHeader = "X-Company-ID"

// CompanyContextMiddleware extracts the company ID header and stores it in the
// Gin context. Requests without it are rejected before reaching any handler.
func CompanyContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		companyID := c.GetHeader(CompanyIDHeader)
		if companyID == "" {
			GetLoggerFromCtx(c.Request.Context()).Warn("Company ID header missing", slog.String("header", CompanyIDHeader))
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": CompanyIDHeader + " header required"})
			return
		}

		c.Set(string(companyIDKey), companyID)
		c.Next()
	}
}

// GetCompanyIDFromContext retrieves the company ID from the Gin context.
// It returns the company ID and a boolean indicating if it was found.
func GetCompanyIDFromContext(c *gin.Context) (string, bool) {
	companyIDVal, exists := c.Get(string(companyIDKey))
	if !exists {
		return "", false
	}

	companyID, ok := companyIDVal.(string)
	if !ok {
		return "", false
	}

	return companyID, true
}
