package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the fixed wire shape for failures: a human-readable message
// plus a stable error code string the client switches on.
type ErrorBody struct {
	Message string            `json:"message"`
	Error   ErrCode           `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// Success sends a JSON response with the given status code and data.
// Success bodies are resource-shaped; only errors share a common envelope.
func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// Fail sends an error response with a code and its default message.
func Fail(c *gin.Context, statusCode int, code ErrCode) {
	c.JSON(statusCode, ErrorBody{Message: GetMessage(code), Error: code})
}

// FailWithFields sends a validation error with field-level details.
func FailWithFields(c *gin.Context, statusCode int, code ErrCode, fields map[string]string) {
	c.JSON(statusCode, ErrorBody{Message: GetMessage(code), Error: code, Fields: fields})
}

// AbortFail aborts the middleware chain and sends an error response.
func AbortFail(c *gin.Context, statusCode int, code ErrCode) {
	c.AbortWithStatusJSON(statusCode, ErrorBody{Message: GetMessage(code), Error: code})
}
