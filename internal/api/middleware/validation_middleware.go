package middleware

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/RishabhMalviya75/ZenithTrack/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// ValidationMiddleware handles request validation
type ValidationMiddleware struct {
	validator *validator.Validate
	log       *logger.Logger
}

// NewValidationMiddleware creates a new validation middleware
func NewValidationMiddleware() *ValidationMiddleware {
	v := validator.New()

	v.RegisterValidation("not_empty", validateNotEmpty)
	v.RegisterValidation("date_string", validateDateString)

	return &ValidationMiddleware{
		validator: v,
		log:       logger.NewLogger(),
	}
}

// ValidateRequest validates the request body against the provided struct
func (m *ValidationMiddleware) ValidateRequest(model interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		modelType := reflect.TypeOf(model)
		if modelType.Kind() == reflect.Ptr {
			modelType = modelType.Elem()
		}
		modelValue := reflect.New(modelType).Interface()

		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
		}

		// Restore the request body for downstream handlers
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))

		if err := json.Unmarshal(bodyBytes, modelValue); err != nil {
			m.log.Error("JSON unmarshal failed",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusBadRequest, gin.H{
				"error": fmt.Sprintf("Invalid JSON format: %v", err.Error()),
			})
			c.Abort()
			return
		}

		if err := m.validator.Struct(modelValue); err != nil {
			errors := make(map[string]string)
			for _, err := range err.(validator.ValidationErrors) {
				field := strings.ToLower(err.Field())
				errors[field] = formatValidationError(err)
			}

			m.log.Error("Validation failed",
				zap.Any("errors", errors),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": errors,
			})
			c.Abort()
			return
		}

		c.Set("validated_model", modelValue)
		c.Next()
	}
}

// ValidateQuery validates query parameters against the provided struct
func (m *ValidationMiddleware) ValidateQuery(model interface{}) gin.HandlerFunc {
	return func(c *gin.Context) {
		modelType := reflect.TypeOf(model)
		if modelType.Kind() == reflect.Ptr {
			modelType = modelType.Elem()
		}
		modelValue := reflect.New(modelType).Interface()

		if err := c.ShouldBindQuery(modelValue); err != nil {
			m.log.Error("Failed to bind query parameters",
				zap.Error(err),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "invalid query parameters",
			})
			c.Abort()
			return
		}

		if err := m.validator.Struct(modelValue); err != nil {
			errors := make(map[string]string)
			for _, err := range err.(validator.ValidationErrors) {
				field := strings.ToLower(err.Field())
				errors[field] = formatValidationError(err)
			}

			m.log.Error("Query validation failed",
				zap.Any("errors", errors),
				zap.String("path", c.Request.URL.Path))
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "validation failed",
				"details": errors,
			})
			c.Abort()
			return
		}

		c.Set("validated_query", modelValue)
		c.Next()
	}
}

// Custom validators
func validateNotEmpty(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	return len(strings.TrimSpace(value)) > 0
}

// validateDateString accepts calendar dates in YYYY-MM-DD form. Dates are
// rejected here so the aggregator never sees a malformed one.
func validateDateString(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if len(value) != 10 {
		return false
	}
	return value[4] == '-' && value[7] == '-'
}

// Helper function to format validation errors
func formatValidationError(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return "this field is required"
	case "email":
		return "invalid email format"
	case "min":
		return "value is too short"
	case "max":
		return "value is too long"
	case "not_empty":
		return "this field cannot be empty"
	case "date_string":
		return "date must be in YYYY-MM-DD format"
	case "oneof":
		return "value is not one of the allowed options"
	default:
		return "invalid value"
	}
}
