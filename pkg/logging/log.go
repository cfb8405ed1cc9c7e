package logging

import (
	"io"
	"log/slog"
	"os"
)

// Logger is usable before Init so packages and tests can log without setup.
var Logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// Init picks the handler for env: JSON in prod, text elsewhere.
func Init(env string) {
	Logger = New(env, os.Stdout)
	slog.SetDefault(Logger)
}

func New(env string, w io.Writer) *slog.Logger {
	if env == "prod" {
		return slog.New(slog.NewJSONHandler(w, nil))
	}
	return slog.New(slog.NewTextHandler(w, nil))
}
