package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/accesshub/campus-back/internal/validation"
)

// Response is the envelope every mutation answers with.
type Response struct {
	Status bool        `json:"status"`
	Data   interface{} `json:"data,omitempty"`
}

// ErrorResponse carries the first validation failure.
type ErrorResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

func respondData(c *gin.Context, code int, data interface{}) {
	c.JSON(code, Response{Status: true, Data: data})
}

// respondError maps the error taxonomy at the request boundary:
// validation errors become 422, a missing row becomes an empty 404,
// everything else is logged and answered as 500.
func respondError(c *gin.Context, err error) {
	if validation.Is(err) {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Status: false, Message: err.Error()})
		return
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.Status(http.StatusNotFound)
		return
	}
	slog.Error("request failed", "path", c.FullPath(), "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Status: false, Message: "internal error"})
}

// respondBadRequest handles binding failures. Declarative tag failures
// (required, oneof, dayofweek, ...) are validation errors and answer
// 422 with the first field's message; only malformed JSON stays a 400.
func respondBadRequest(c *gin.Context, err error) {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Status: false, Message: bindingMessage(fieldErrs[0])})
		return
	}
	c.JSON(http.StatusBadRequest, ErrorResponse{Status: false, Message: err.Error()})
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", fe.Field())
	case "email":
		return fmt.Sprintf("the %s field must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("the %s field must be at least %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("the %s field must be one of %s", fe.Field(), fe.Param())
	case "dayofweek":
		return fmt.Sprintf("the %s field must be an uppercase day of week", fe.Field())
	case "timeofday":
		return fmt.Sprintf("the %s field must be an HH:MM:SS time", fe.Field())
	case "dateonly":
		return fmt.Sprintf("the %s field must be a YYYY-MM-DD date", fe.Field())
	default:
		return fmt.Sprintf("the %s field is invalid", fe.Field())
	}
}
