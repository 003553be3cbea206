package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo is a code plus a message safe to show to shoppers.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError turns storage and driver errors into an ErrorInfo. context names the
// operation ("create product", "update profile") and shapes the fallback message.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{Code: InternalServerError, Message: "Something went wrong"}
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{Code: ResourceNotFound, Message: notFoundMessage(context)}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return parseDuplicateKeyError(err.Error())
	}

	lower := strings.ToLower(err.Error())

	// postgres 23505 / sqlite UNIQUE
	if strings.Contains(lower, "duplicate key") || strings.Contains(lower, "unique constraint") {
		return parseDuplicateKeyError(lower)
	}

	// postgres 23502 / sqlite NOT NULL
	if strings.Contains(lower, "not-null constraint") || strings.Contains(lower, "not null constraint") {
		return parseNotNullError(lower)
	}

	// postgres 23514 / sqlite CHECK
	if strings.Contains(lower, "check constraint") {
		return ErrorInfo{Code: ValidationInvalidInput, Message: "Some values are out of range"}
	}

	if strings.Contains(lower, "connection refused") ||
		strings.Contains(lower, "no such host") ||
		strings.Contains(lower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "A backing service is unavailable. Please try again shortly",
		}
	}

	return ErrorInfo{Code: InternalServerError, Message: defaultMessage(context)}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	if strings.Contains(strings.ToLower(errStr), "email") {
		return ErrorInfo{Code: AuthEmailAlreadyExists, Message: "That email is already registered"}
	}
	return ErrorInfo{Code: ResourceAlreadyExists, Message: "That record already exists"}
}

func parseNotNullError(errStr string) ErrorInfo {
	switch {
	case strings.Contains(errStr, "email"):
		return ErrorInfo{Code: ValidationRequired, Message: "Email is required"}
	case strings.Contains(errStr, "password"):
		return ErrorInfo{Code: ValidationRequired, Message: "Password is required"}
	case strings.Contains(errStr, "name"):
		return ErrorInfo{Code: ValidationRequired, Message: "Name is required"}
	}
	return ErrorInfo{Code: ValidationRequired, Message: "A required field is missing"}
}

func notFoundMessage(context string) string {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "product"):
		return "Product not found"
	case strings.Contains(lower, "user"), strings.Contains(lower, "profile"):
		return "User not found"
	case strings.Contains(lower, "cart"):
		return "Cart not found"
	}
	return "The requested item was not found"
}

func defaultMessage(context string) string {
	lower := strings.ToLower(context)
	switch {
	case strings.Contains(lower, "create"), strings.Contains(lower, "register"):
		return "Could not save. Please try again shortly"
	case strings.Contains(lower, "update"):
		return "Could not update. Please try again shortly"
	case strings.Contains(lower, "delete"):
		return "Could not delete. Please try again shortly"
	}
	return "Something went wrong. Please try again shortly"
}

// ParseAndRespond parses err and writes it with statusCode.
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	info := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   info.Code,
		Message: info.Message,
	})
}
