package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorKind classifies application failures for transport mapping.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindValidation
	KindConflict
	KindNotFound
	KindAuth
)

// AppError is a classified failure with a client-safe message.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

func ValidationError(msg string) error { return &AppError{Kind: KindValidation, Message: msg} }

func ConflictError(msg string) error { return &AppError{Kind: KindConflict, Message: msg} }

func NotFoundError(msg string) error { return &AppError{Kind: KindNotFound, Message: msg} }

func AuthError(msg string) error { return &AppError{Kind: KindAuth, Message: msg} }

// WrapConflict marks a store-level duplicate key failure as a conflict.
func WrapConflict(msg string, err error) error {
	return &AppError{Kind: KindConflict, Message: msg, Err: err}
}

// KindOf returns the kind of the first AppError in err's chain.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// ErrorHandler is a middleware that turns panics into a 500 envelope.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				GetLogger().Error("Unhandled panic", zap.Any("error", err), zap.String("path", c.FullPath()))

				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"success": false,
					"message": "Internal Server Error",
					"error":   "An unexpected error occurred. Please try again later.",
				})
			}
		}()
		c.Next()
	}
}
