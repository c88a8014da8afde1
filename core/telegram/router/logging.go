package router

import (
	"strings"
	"time"

	"github.com/maz-edu/sellersbot/core/logger"
	tghelpers "github.com/maz-edu/sellersbot/core/telegram/helpers"
	"log/slog"

	tele "gopkg.in/telebot.v4"
)

func handleWithSummary(c tele.Context, handlerName string, start time.Time, fn func() error, extras ...slog.Attr) error {
	tghelpers.WithHandler(c, handlerName)
	err := fn()
	logHandlerSummary(c, handlerName, start, err, extras...)
	return err
}

func logHandlerSummary(c tele.Context, handlerName string, start time.Time, err error, extras ...slog.Attr) {
	ctx := tghelpers.WithHandler(c, handlerName)

	attrs := []slog.Attr{
		slog.String("status", logger.Status(err)),
		slog.String("handler", handlerName),
		slog.Duration("duration", logger.Took(start)),
	}
	if user := c.Sender(); user != nil {
		attrs = append(attrs, slog.Int64("user_id", user.ID))
	}
	attrs = append(attrs, extras...)
	if err != nil {
		attrs = append(attrs, slog.String("err", err.Error()))
		logger.TG.LogAttrs(ctx, slog.LevelError, "handler.summary", attrs...)
		return
	}
	logger.TG.LogAttrs(ctx, slog.LevelInfo, "handler.summary", attrs...)
}

func normalizeHandlerName(name string) string {
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "unknown"
	}
	return name
}
