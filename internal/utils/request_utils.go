package utils

import (
	"github.com/gin-gonic/gin"

	"adoption-server/internal/schemas"
)

// WriteAndLogResponse writes a success response with the given payload keys and status code.
// The payload is wrapped in the response envelope carrying success: true.
func WriteAndLogResponse(ctx *gin.Context, payload gin.H, statusCode int) {
	LogMessageWithFields(ctx, "info", "Returning response")

	response := gin.H{"success": true}
	for key, value := range payload {
		response[key] = value
	}
	ctx.JSON(statusCode, response)
}

// WriteAndLogError logs the provided error and sends an error response with the
// specified status code and error details in the response envelope.
func WriteAndLogError(ctx *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	LogMessageWithFieldsAndError(ctx, "error", "Error occurred", err)
	LogMessageWithFields(ctx, "error", "Returning "+customErr.Code+" / "+customErr.Message)

	errorDto := &schemas.ErrorDTO{
		Success: false,
		Error:   *customErr,
	}
	ctx.JSON(statusCode, errorDto)
}

// AbortWithError behaves like WriteAndLogError but also aborts the middleware chain.
func AbortWithError(ctx *gin.Context, customErr *schemas.CustomError, statusCode int, err error) {
	LogMessageWithFieldsAndError(ctx, "error", "Aborting request", err)

	errorDto := &schemas.ErrorDTO{
		Success: false,
		Error:   *customErr,
	}
	ctx.AbortWithStatusJSON(statusCode, errorDto)
}
