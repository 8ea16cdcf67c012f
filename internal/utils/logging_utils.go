package utils

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GenerateTraceId returns a fresh trace id for a request.
func GenerateTraceId() string {
	return uuid.New().String()
}

// ExtractServiceName returns the service name used in log fields.
func ExtractServiceName() string {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "adoption-server"
	}
	return service
}

// LogEntry dispatches a message to the given entry at the requested level.
func LogEntry(entry *log.Entry, level, message string) {
	switch level {
	case "debug":
		entry.Debug(message)
	case "info":
		entry.Info(message)
	case "warn":
		entry.Warn(message)
	case "error":
		entry.Error(message)
	case "fatal":
		entry.Fatal(message)
	case "panic":
		entry.Panic(message)
	default:
		entry.Info(message)
	}
}

// LogMessageWithFields logs a message enriched with the request's trace id and service name.
func LogMessageWithFields(ctx *gin.Context, level, message string) {
	entry := log.WithFields(log.Fields{
		"traceId": traceIdFromContext(ctx),
		"service": ExtractServiceName(),
	})

	LogEntry(entry, level, message)
}

// LogMessageWithFieldsAndError logs a message with trace fields plus the causing error.
func LogMessageWithFieldsAndError(ctx *gin.Context, level, message string, err error) {
	entry := log.WithFields(log.Fields{
		"traceId": traceIdFromContext(ctx),
		"service": ExtractServiceName(),
		"error":   err,
	})

	LogEntry(entry, level, message)
}

func traceIdFromContext(ctx *gin.Context) string {
	if traceId, ok := ctx.Value(TraceIdKey.String()).(string); ok {
		return traceId
	}
	return ""
}
