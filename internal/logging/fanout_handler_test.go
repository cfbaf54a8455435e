package logging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestNewFanoutHandlerUnwraps(t *testing.T) {
	if _, ok := newFanoutHandler(nil, nil).(NoopHandler); !ok {
		t.Fatal("expected NoopHandler when every handler is nil")
	}
	var buf bytes.Buffer
	inner := slog.NewJSONHandler(&buf, nil)
	if got, ok := newFanoutHandler(nil, inner, nil).(*slog.JSONHandler); !ok || got != inner {
		t.Fatal("expected the single live handler to be returned unwrapped")
	}
}

func TestFanoutHandlerRoutesByLevel(t *testing.T) {
	cases := []struct {
		name      string
		level     slog.Level
		wantInfo  bool
		wantDebug bool
	}{
		{"debug reaches debug sink only", slog.LevelDebug, false, true},
		{"info reaches both", slog.LevelInfo, true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var infoBuf, debugBuf bytes.Buffer
			h := newFanoutHandler(
				slog.NewJSONHandler(&infoBuf, &slog.HandlerOptions{Level: slog.LevelInfo}),
				slog.NewJSONHandler(&debugBuf, &slog.HandlerOptions{Level: slog.LevelDebug}),
			)
			if !h.Enabled(context.Background(), tc.level) {
				t.Fatalf("expected fanout to accept %v", tc.level)
			}
			slog.New(h).Log(context.Background(), tc.level, "message", slog.String("attr", "value"))
			if got := infoBuf.Len() > 0; got != tc.wantInfo {
				t.Fatalf("info sink wrote=%v, want %v", got, tc.wantInfo)
			}
			if got := debugBuf.Len() > 0; got != tc.wantDebug {
				t.Fatalf("debug sink wrote=%v, want %v", got, tc.wantDebug)
			}
			if tc.wantInfo && !strings.Contains(infoBuf.String(), `"attr":"value"`) {
				t.Fatalf("expected attribute in info sink: %s", infoBuf.String())
			}
		})
	}

	h := newFanoutHandler(
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelWarn}),
		slog.NewJSONHandler(&bytes.Buffer{}, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	if h.Enabled(context.Background(), slog.LevelInfo) {
		t.Fatal("expected info to be disabled when no sink accepts it")
	}
}

func TestFanoutHandlerWithAttrsAndGroup(t *testing.T) {
	var buf1, buf2 bytes.Buffer
	h := newFanoutHandler(slog.NewJSONHandler(&buf1, nil), slog.NewJSONHandler(&buf2, nil))
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("input", "budget.xlsx")}).WithGroup("summary"))
	logger.Info("loaded", slog.Int("rows", 4))

	for i, buf := range []*bytes.Buffer{&buf1, &buf2} {
		out := buf.String()
		if !strings.Contains(out, `"input":"budget.xlsx"`) || !strings.Contains(out, `"summary":{"rows":4}`) {
			t.Fatalf("sink %d missing attrs or group: %s", i+1, out)
		}
	}
}

type failingHandler struct{ err error }

func (f failingHandler) Enabled(context.Context, slog.Level) bool { return true }

func (f failingHandler) Handle(context.Context, slog.Record) error { return f.err }

func (f failingHandler) WithAttrs([]slog.Attr) slog.Handler { return f }

func (f failingHandler) WithGroup(string) slog.Handler { return f }

func TestFanoutHandlerJoinsErrors(t *testing.T) {
	errA, errB := errors.New("disk full"), errors.New("closed pipe")
	var buf bytes.Buffer
	h := newFanoutHandler(failingHandler{errA}, slog.NewJSONHandler(&buf, nil), failingHandler{errB})

	err := h.Handle(context.Background(), slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0))
	if !errors.Is(err, errA) || !errors.Is(err, errB) {
		t.Fatalf("expected both errors, got %v", err)
	}
	if buf.Len() == 0 {
		t.Fatal("healthy sink should still receive the record")
	}
}

func TestFanoutConsoleAndFileHandlers(t *testing.T) {
	var consoleBuf, fileBuf bytes.Buffer
	lvl := new(slog.LevelVar)
	lvl.Set(slog.LevelInfo)
	fileHandler, err := newJSONHandler(&fileBuf, lvl, false)
	if err != nil {
		t.Fatalf("newJSONHandler: %v", err)
	}

	logger := slog.New(newFanoutHandler(newConsoleHandler(&consoleBuf, lvl, false), fileHandler))
	logger = WithContext(WithRunID(context.Background(), "0123456789abcdef"), NewComponentLogger(logger, "report"))
	logger.Info("report written",
		slog.String("path", "reports/project_report.html"),
		slog.Float64("utilization", 53.33333),
		slog.Any("columns", []string{"Task", "Budgeted"}))

	console := consoleBuf.String()
	if !strings.Contains(console, "[report] run 01234567 – report written") {
		t.Fatalf("unexpected console header: %q", console)
	}
	for _, want := range []string{
		"    - path: reports/project_report.html",
		"    - utilization: 53.33",
		"    - columns: [Task, Budgeted]",
	} {
		if !strings.Contains(console, want) {
			t.Fatalf("expected %q in console output: %q", want, console)
		}
	}
	if !bytes.Contains(fileBuf.Bytes(), []byte(`"run_id":"0123456789abcdef"`)) {
		t.Fatalf("expected full run id in json output: %s", fileBuf.String())
	}
	if !bytes.Contains(fileBuf.Bytes(), []byte(`"level":"info"`)) {
		t.Fatalf("expected lowercase level in json output: %s", fileBuf.String())
	}
}
