package middleware

import (
	"net/http"
	"reflect"

	"github.com/gin-gonic/gin"

	"adoption-server/internal/schemas"
	"adoption-server/internal/utils"
)

// ValidateAndSanitizeStruct binds the request body into a fresh instance of
// the given request struct, strips markup from its string fields and runs the
// validator over it before the handler sees it. The validated object is stored
// in the request context under utils.SanitizedPayloadKey.
func ValidateAndSanitizeStruct(obj interface{}) gin.HandlerFunc {
	objType := reflect.TypeOf(obj).Elem()

	return func(c *gin.Context) {
		payload := reflect.New(objType).Interface()

		if err := c.ShouldBindJSON(payload); err != nil {
			utils.AbortWithError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		validator := utils.GetValidator()
		if err := validator.SanitizeData(payload); err != nil {
			utils.AbortWithError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		if err := validator.Validate.Struct(payload); err != nil {
			utils.AbortWithError(c, schemas.BadRequest, http.StatusBadRequest, err)
			return
		}

		c.Set(utils.SanitizedPayloadKey.String(), payload)
		c.Next()
	}
}
