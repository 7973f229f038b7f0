package middleware

import (
	"log/slog"
	"os"
	"time"

	"inventory-reservation/internal/pkg/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const (
	RequestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

type Logger struct {
	logger *slog.Logger
}

// NewLogger builds the process logger and installs it as the slog default.
// Release mode writes JSON; every other gin mode writes text.
func NewLogger(cfg config.LogConfig) *Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = slog.LevelInfo
	}
	timezone := time.FixedZone(cfg.TimeZone, cfg.TimeZoneOffset)

	opts := &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key != slog.TimeKey {
				return a
			}
			if t, ok := a.Value.Any().(time.Time); ok {
				a.Value = slog.StringValue(t.In(timezone).Format(cfg.TimeFormat))
			}
			return a
		},
	}

	var handler slog.Handler = slog.NewTextHandler(os.Stdout, opts)
	if gin.Mode() == gin.ReleaseMode {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return &Logger{logger: logger}
}

func (l *Logger) GetSlogLogger() *slog.Logger {
	return l.logger
}

// LoggingMiddleware tags each request with an id, echoing a caller-supplied
// X-Request-ID, and logs the request on entry and on completion.
func (l *Logger) LoggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(requestIDKey, requestID)
		c.Header(RequestIDHeader, requestID)

		attrs := []any{
			slog.String("request_id", requestID),
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.String("client_ip", c.ClientIP()),
		}
		// Continue the caller's trace so command spans join it.
		ctx := otel.GetTextMapPropagator().Extract(c.Request.Context(), propagation.HeaderCarrier(c.Request.Header))
		c.Request = c.Request.WithContext(ctx)
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			attrs = append(attrs, slog.String("trace_id", sc.TraceID().String()))
		}
		// Checkout callers identify the order or session they act for.
		if orderID := c.GetHeader("X-Order-ID"); orderID != "" {
			attrs = append(attrs, slog.String("order_id", orderID))
		}
		if sessionID := c.GetHeader("X-Session-ID"); sessionID != "" {
			attrs = append(attrs, slog.String("session_id", sessionID))
		}
		reqLogger := l.logger.With(attrs...)
		reqLogger.Debug("request started")

		c.Next()

		status := c.Writer.Status()
		done := []any{
			slog.Int("status_code", status),
			slog.Duration("duration", time.Since(start)),
		}
		if size := c.Writer.Size(); size > 0 {
			done = append(done, slog.Int("response_size", size))
		}
		if len(c.Errors) > 0 {
			done = append(done, slog.String("errors", c.Errors.String()))
		}

		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		reqLogger.Log(c.Request.Context(), level, "request completed", done...)
	}
}

func GetRequestID(c *gin.Context) string {
	return c.GetString(requestIDKey)
}
