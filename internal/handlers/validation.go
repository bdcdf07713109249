package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgInternalServerError = "Internal server error"
	msgConflict            = "The ledger was updated by another request. Please try again."
	msgNotFound            = "Not found."
)

var registerTagNameOnce sync.Once

// useFormFieldNames makes validation errors report the input field name
// (e.g. "to_account") instead of the Go struct field name.
func useFormFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
}

// bindForm binds a JSON or url-encoded body into form and returns per-field messages.
func bindForm(c *gin.Context, form any) dto.FieldErrors {
	registerTagNameOnce.Do(useFormFieldNames)

	errs := dto.FieldErrors{}
	if err := c.ShouldBind(form); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			for _, fe := range validationErrs {
				errs.Add(fe.Field(), translateFieldError(fe))
			}
		} else {
			errs.Add(apperrors.FieldInternal, "Invalid request format: "+err.Error())
		}
	}
	return errs
}

func translateFieldError(fe validator.FieldError) string {
	value := fmt.Sprint(fe.Value())
	switch fe.Tag() {
	case "required":
		return dto.MsgRequired
	case "max":
		return dto.MaxLengthMessage(fe.Param(), utf8.RuneCountInString(value))
	case "min":
		return dto.MinLengthMessage(fe.Param(), utf8.RuneCountInString(value))
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}

// respondFieldErrors writes a 400 with the collected messages.
func respondFieldErrors(c *gin.Context, errs dto.FieldErrors) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Rejected invalid input", slog.Any("errors", errs))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: errs})
}

// respondError maps a service error onto the error body and status code.
func respondError(c *gin.Context, err error) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var ledgerErr *apperrors.LedgerError
	switch {
	case errors.As(err, &ledgerErr):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Errors: dto.FieldErrors{ledgerErr.Field: {ledgerErr.Message}}})
	case errors.Is(err, apperrors.ErrConflict):
		logger.Warn("Concurrent update conflict", slog.String("error", err.Error()))
		c.JSON(http.StatusConflict, internalError(msgConflict))
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, internalError(msgNotFound))
	default:
		logger.Error("Request failed", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, internalError(msgInternalServerError))
	}
}

func internalError(msg string) dto.ErrorResponse {
	return dto.ErrorResponse{Errors: dto.FieldErrors{apperrors.FieldInternal: {msg}}}
}

// pathID parses the :id path parameter, answering 400 itself when it is not an integer.
func pathID(c *gin.Context) (int64, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondFieldErrors(c, dto.FieldErrors{"id": {dto.InvalidChoiceMessage(raw)}})
		return 0, false
	}
	return id, true
}
