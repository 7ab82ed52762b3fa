package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/isp_bookkeeping_app/internal/middleware"
	"github.com/SscSPs/isp_bookkeeping_app/internal/utils"
)

const dateLayout = "2006-01-02"

// IDGenerator hands out unique, time-based ids with the given prefix.
type IDGenerator interface {
	NewID(prefix string) string
}

// BaseService provides common functionality for all services
type BaseService struct {
	Clock func() time.Time
	IDs   IDGenerator
}

// ServiceOption configures the BaseService embedded in every service.
type ServiceOption func(*BaseService)

// WithClock overrides time.Now, mostly for tests.
func WithClock(clock func() time.Time) ServiceOption {
	return func(b *BaseService) {
		b.Clock = clock
	}
}

// WithIDGenerator sets the id source for new records.
func WithIDGenerator(ids IDGenerator) ServiceOption {
	return func(b *BaseService) {
		b.IDs = ids
	}
}

func newBaseService(options []ServiceOption) BaseService {
	// node 0 is always in range
	ids, _ := utils.NewSnowflakeIDGenerator(0)
	b := BaseService{Clock: time.Now, IDs: ids}
	for _, option := range options {
		option(&b)
	}
	return b
}

// Today is the service clock's current date as YYYY-MM-DD.
func (s *BaseService) Today() string {
	return s.Clock().Format(dateLayout)
}

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

// LogWarn logs a warning with consistent formatting
func (s *BaseService) LogWarn(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Warn(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}
