package utils

import (
	"encoding/json"
	"fmt"
	"strconv"

	httpError "marketplace-service/src/pkg/http-error"

	"github.com/gofiber/fiber/v2"
)

// Result is the envelope every usecase returns.
type Result struct {
	Data  interface{}
	Error error
}

type responseBody struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Response writes a success envelope.
func Response(data interface{}, message string, code int, ctx *fiber.Ctx) error {
	return ctx.Status(code).JSON(responseBody{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ResponseError maps usecase errors to HTTP responses. Unknown error types
// collapse to 500 so no internal detail leaks by accident.
func ResponseError(err error, ctx *fiber.Ctx) error {
	if commonErr, ok := err.(*httpError.CommonError); ok {
		return ctx.Status(commonErr.Code).JSON(responseBody{
			Success: false,
			Message: commonErr.Message,
		})
	}
	return ctx.Status(fiber.StatusInternalServerError).JSON(responseBody{
		Success: false,
		Message: err.Error(),
	})
}

// ConvertString renders any value as a string for log meta fields.
func ConvertString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []byte:
		return string(val)
	case error:
		return val.Error()
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprintf("%+v", val)
		}
		return string(b)
	}
}

// ConvertInt parses ints from loosely typed config values.
func ConvertInt(v interface{}) int {
	switch val := v.(type) {
	case int:
		return val
	case int64:
		return int(val)
	case float64:
		return int(val)
	case string:
		n, err := strconv.Atoi(val)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
