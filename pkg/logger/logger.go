// Package logger provides structured event logging for the server.
// Events are single snake_case words with a flat map of details,
// emitted as JSON via log/slog.
package logger

import (
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

var (
	log  *slog.Logger
	once sync.Once
)

func Init() {
	once.Do(func() {
		log = slog.New(slog.NewJSONHandler(os.Stdout, nil))
		slog.SetDefault(log)
	})
}

func logger() *slog.Logger {
	if log == nil {
		Init()
	}
	return log
}

func attrs(details map[string]interface{}) []any {
	out := make([]any, 0, len(details)*2)
	for key, value := range details {
		out = append(out, key, value)
	}
	return out
}

func Info(event string, details map[string]interface{}) {
	logger().Info(event, attrs(details)...)
}

func Warn(event string, details map[string]interface{}) {
	logger().Warn(event, attrs(details)...)
}

func Error(event string, err error, details map[string]interface{}) {
	args := attrs(details)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	logger().Error(event, args...)
}

func InfoWithUser(userID, event string, details map[string]interface{}) {
	logger().Info(event, append(attrs(details), "user_id", userID)...)
}

func WarnWithUser(userID, event string, details map[string]interface{}) {
	logger().Warn(event, append(attrs(details), "user_id", userID)...)
}

func ErrorWithUser(userID, event string, err error, details map[string]interface{}) {
	args := append(attrs(details), "user_id", userID)
	if err != nil {
		args = append(args, "error", err.Error())
	}
	logger().Error(event, args...)
}

func GenerateRequestID() string {
	return uuid.New().String()
}
