package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/generated/servers"
	"orderflow/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/labstack/echo/v4"
)

// NewErrorHandler renders every handler error as servers.Error.
//
//	validation             -> 400 "Validation Failed" with fieldErrors
//	invalid transition     -> 400 "Invalid Status Transition"
//	not found              -> 404 "Order Not Found"
//	echo.HTTPError         -> its own code
//	anything else          -> 500, logged, details hidden
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "http_error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ctx := c.Request().Context()
		status, body := toErrorResponse(err)
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "request failed",
				"method", c.Request().Method, "path", c.Path(), "error", err)
		} else {
			logger.DebugContext(ctx, "request rejected",
				"method", c.Request().Method, "path", c.Path(), "status", status, "error", err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, body)
		}
		if err != nil {
			logger.ErrorContext(ctx, "cannot write error response", "error", err)
		}
	}
}

func toErrorResponse(err error) (int, servers.Error) {
	var (
		transitionErr *order.InvalidTransitionError
		notFoundErr   *errs.ObjectNotFoundError
		requestErr    *openapi3filter.RequestError
		httpErr       *echo.HTTPError
	)

	switch {
	case errors.As(err, &transitionErr):
		return errorBody(http.StatusBadRequest, "Invalid Status Transition", transitionErr.Error(), nil)

	case errors.As(err, &notFoundErr):
		return errorBody(http.StatusNotFound, "Order Not Found",
			fmt.Sprintf("Order not found with id: %v", notFoundErr.ID), nil)

	case errs.IsValidation(err):
		fields := make(map[string]string)
		collectFieldErrors(err, fields)
		return errorBody(http.StatusBadRequest, "Validation Failed", "Request validation failed", fields)

	case errors.As(err, &requestErr):
		field, reason := requestFieldError(requestErr)
		return errorBody(http.StatusBadRequest, "Validation Failed", "Request validation failed",
			map[string]string{field: reason})

	case errors.As(err, &httpErr):
		return errorBody(httpErr.Code, http.StatusText(httpErr.Code), fmt.Sprint(httpErr.Message), nil)

	default:
		return errorBody(http.StatusInternalServerError, "Internal Server Error", "An unexpected error occurred", nil)
	}
}

func errorBody(code int, title, message string, fields map[string]string) (int, servers.Error) {
	body := servers.Error{
		Code:    code,
		Error:   title,
		Message: message,
	}
	if len(fields) > 0 {
		body.FieldErrors = &fields
	}
	return code, body
}

// collectFieldErrors walks errors.Join trees and records one message per field.
func collectFieldErrors(err error, into map[string]string) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, inner := range joined.Unwrap() {
			collectFieldErrors(inner, into)
		}
		return
	}

	var (
		required   *errs.ValueIsRequiredError
		outOfRange *errs.ValueIsOutOfRangeError
		invalid    *errs.ValueIsInvalidError
	)

	switch {
	case errors.As(err, &required):
		into[required.ParamName] = "is required"
	case errors.As(err, &outOfRange):
		if fmt.Sprint(outOfRange.Max) == "unbounded" {
			into[outOfRange.ParamName] = fmt.Sprintf("must be at least %v", outOfRange.Min)
		} else {
			into[outOfRange.ParamName] = fmt.Sprintf("must be between %v and %v", outOfRange.Min, outOfRange.Max)
		}
	case errors.As(err, &invalid):
		into[invalid.ParamName] = "is invalid"
		if invalid.Cause != nil {
			into[invalid.ParamName] = invalid.Cause.Error()
		}
	}
}

func requestFieldError(requestErr *openapi3filter.RequestError) (string, string) {
	field := "body"
	if requestErr.Parameter != nil {
		field = requestErr.Parameter.Name
	}

	var schemaErr *openapi3.SchemaError
	if errors.As(requestErr.Err, &schemaErr) {
		if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
			field = strings.Join(pointer, ".")
		}
		return field, schemaErr.Reason
	}

	if requestErr.Err != nil {
		return field, requestErr.Err.Error()
	}
	return field, requestErr.Reason
}
