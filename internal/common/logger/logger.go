package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/rs/zerolog"
)

// Options configures the process-wide log sink.
type Options struct {
	Level  string
	Pretty bool
	File   string // when set, entries go to a rotating file instead of stdout
}

var (
	mu   sync.RWMutex
	sink = zerolog.New(os.Stdout).Level(zerolog.InfoLevel)
	host = hostname()
)

func init() {
	zerolog.TimestampFieldName = "timestamp"
	zerolog.TimeFieldFormat = time.RFC3339Nano
	zerolog.LevelFieldMarshalFunc = func(l zerolog.Level) string { return strings.ToUpper(l.String()) }
}

// Setup replaces the shared sink. The returned closer flushes the log file, if any.
func Setup(opts Options) io.Closer {
	var (
		out    io.Writer = os.Stdout
		closer io.Closer = nopCloser{}
	)
	if opts.File != "" {
		lj := &lumberjack.Logger{Filename: opts.File, MaxSize: 100, MaxBackups: 5, MaxAge: 28}
		out, closer = lj, lj
	}
	if opts.Pretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	mu.Lock()
	sink = zerolog.New(out).Level(level)
	mu.Unlock()
	return closer
}

type Logger struct {
	service   string
	requestID string
	zl        zerolog.Logger
}

func New(service string) *Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &Logger{service: service, zl: sink}
}

// NewWithWriter writes to w at debug level. Used by tests.
func NewWithWriter(service string, w io.Writer) *Logger {
	return &Logger{service: service, zl: zerolog.New(w).Level(zerolog.DebugLevel)}
}

// WithRequestID returns a copy that stamps every entry with id.
func (l *Logger) WithRequestID(id string) *Logger {
	cp := *l
	cp.requestID = id
	return &cp
}

func (l *Logger) log(ev *zerolog.Event, action string, fields map[string]any, err error) {
	if ev == nil {
		return
	}
	ev = ev.Timestamp().
		Str("service", l.service).
		Str("action", action).
		Str("hostname", host).
		Str("request_id", l.requestID)
	if fields != nil {
		ev = ev.Fields(fields)
	}
	if err != nil {
		ev = ev.Dict("error", zerolog.Dict().Str("msg", err.Error()).Str("stack", fmt.Sprintf("%T", err)))
	}
	ev.Msg(action)
}

func (l *Logger) Info(action string, fields map[string]any)  { l.log(l.zl.Info(), action, fields, nil) }
func (l *Logger) Debug(action string, fields map[string]any) { l.log(l.zl.Debug(), action, fields, nil) }
func (l *Logger) Warn(action string, err error, fields map[string]any) {
	l.log(l.zl.Warn(), action, fields, err)
}
func (l *Logger) Error(action string, err error, fields map[string]any) {
	l.log(l.zl.Error(), action, fields, err)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

func hostname() string { h, _ := os.Hostname(); return h }
