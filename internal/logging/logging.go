package logging

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

type Field struct {
	Key   string
	Value any
}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

type zerologLogger struct {
	zl    zerolog.Logger
	level Level
}

// New returns a logger writing logfmt-style lines to out.
func New(out io.Writer, level Level) Logger {
	if out == nil {
		out = os.Stdout
	}
	writer := zerolog.ConsoleWriter{
		Out:        out,
		NoColor:    true,
		TimeFormat: time.RFC3339Nano,
	}
	zl := zerolog.New(writer).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{zl: zl, level: level}
}

func Nop() Logger {
	return &zerologLogger{zl: zerolog.Nop(), level: Error + 1}
}

func (l *zerologLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	return level >= l.level
}

func (l *zerologLogger) With(fields ...Field) Logger {
	if l == nil {
		return Nop()
	}
	ctx := l.zl.With()
	for _, field := range fields {
		ctx = ctx.Interface(field.Key, contextValue(field.Value))
	}
	return &zerologLogger{zl: ctx.Logger(), level: l.level}
}

func (l *zerologLogger) Debug(msg string, fields ...Field) { l.log(Debug, msg, fields...) }
func (l *zerologLogger) Info(msg string, fields ...Field)  { l.log(Info, msg, fields...) }
func (l *zerologLogger) Warn(msg string, fields ...Field)  { l.log(Warn, msg, fields...) }
func (l *zerologLogger) Error(msg string, fields ...Field) { l.log(Error, msg, fields...) }

func (l *zerologLogger) log(level Level, msg string, fields ...Field) {
	if l == nil || level < l.level {
		return
	}
	event := l.zl.WithLevel(zerologLevel(level))
	if event == nil {
		return
	}
	for _, field := range fields {
		event = appendField(event, field)
	}
	event.Msg(msg)
}

func appendField(event *zerolog.Event, field Field) *zerolog.Event {
	switch v := field.Value.(type) {
	case nil:
		return event.Interface(field.Key, nil)
	case string:
		return event.Str(field.Key, v)
	case []byte:
		return event.Str(field.Key, string(v))
	case error:
		return event.AnErr(field.Key, v)
	case time.Duration:
		return event.Str(field.Key, v.String())
	case fmt.Stringer:
		return event.Stringer(field.Key, v)
	case bool:
		return event.Bool(field.Key, v)
	case int:
		return event.Int(field.Key, v)
	case int64:
		return event.Int64(field.Key, v)
	case uint64:
		return event.Uint64(field.Key, v)
	case float64:
		return event.Float64(field.Key, v)
	default:
		return event.Str(field.Key, fmt.Sprintf("%v", v))
	}
}

func contextValue(value any) any {
	switch v := value.(type) {
	case error:
		return v.Error()
	case time.Duration:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return v
	}
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func NewRequestID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf[:])
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}
