package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 50
	maxLimit     = 100
)

// ParseLimitParam extracts the 'limit' query parameter from the request.
// It falls back to the default and clamps the value to a sane range.
func ParseLimitParam(ctx *gin.Context) int {
	limitString := ctx.Query(LimitParamKey)
	if limitString == "" {
		return defaultLimit
	}

	limit, err := strconv.Atoi(limitString)
	if err != nil || limit <= 0 {
		return defaultLimit
	}

	if limit > maxLimit {
		return maxLimit
	}

	return limit
}
