package response

import "github.com/gin-gonic/gin"

const (
	CodeOK                 = 0
	CodeBadRequest         = 40000
	CodeValidationFailed   = 40001
	CodeUnauthorized       = 40100
	CodeInvalidCredentials = 40101
	CodeNotFound           = 40400
	CodeUsernameExists     = 40901
	CodeEmailExists        = 40902
	CodeInternalServer     = 50000
)

type FieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type APIResponse struct {
	Code    int           `json:"code"`
	Message string        `json:"message"`
	Data    interface{}   `json:"data,omitempty"`
	Details []FieldDetail `json:"details,omitempty"`
}

func OK(c *gin.Context, data interface{}) {
	c.JSON(200, APIResponse{
		Code:    CodeOK,
		Message: "ok",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, APIResponse{
		Code:    CodeOK,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, httpStatus, code int, message string) {
	c.JSON(httpStatus, APIResponse{
		Code:    code,
		Message: message,
	})
}

func ValidationFailed(c *gin.Context, details []FieldDetail) {
	c.JSON(400, APIResponse{
		Code:    CodeValidationFailed,
		Message: "validation failed",
		Details: details,
	})
}
