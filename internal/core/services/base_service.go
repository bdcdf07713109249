package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/SscSPs/bank_ledger/internal/apperrors"
	"github.com/SscSPs/bank_ledger/internal/dto"
	"github.com/SscSPs/bank_ledger/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct{}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// LogFailure logs rule violations at warn level and everything else as an error.
func (s *BaseService) LogFailure(ctx context.Context, err error, msg string, keyvals ...any) {
	var ledgerErr *apperrors.LedgerError
	if errors.As(err, &ledgerErr) {
		args := append([]any{slog.String("reason", ledgerErr.Message)}, keyvals...)
		s.GetLogger(ctx).Warn(msg, args...)
		return
	}
	s.LogError(ctx, err, msg, keyvals...)
}

// notFoundChoice reports an unknown id against the input field that referenced it.
func notFoundChoice(field string, id int64) error {
	return apperrors.NewFieldError(apperrors.ErrNotFound, field, dto.InvalidChoiceMessage(strconv.FormatInt(id, 10)))
}

// translateDuplicate turns a store uniqueness violation into the user-facing message.
func translateDuplicate(err error, format string, value string) error {
	var ledgerErr *apperrors.LedgerError
	if errors.Is(err, apperrors.ErrDuplicate) && !errors.As(err, &ledgerErr) {
		return apperrors.NewLedgerError(apperrors.ErrDuplicate, fmt.Sprintf(format, value))
	}
	return err
}
