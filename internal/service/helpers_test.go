package service

import (
	"io"
	"log/slog"
	"time"
)

var testNow = time.Date(2024, 3, 15, 18, 30, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func fixedNow() time.Time { return testNow }

func strPtr(s string) *string { return &s }
