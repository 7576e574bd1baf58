package log

import (
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/natefinch/lumberjack"
	"go.uber.org/zap"
)

const rotateScheme = "rotate"

// Rotation defaults applied when ZapConfig leaves them at zero.
const (
	DefaultMaxSizeMB  = 10
	DefaultMaxBackups = 3
	DefaultMaxAgeDays = 28
)

// RotateConfig bounds log files written through OutputPaths.
type RotateConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func (r RotateConfig) withDefaults() RotateConfig {
	if r.MaxSizeMB <= 0 {
		r.MaxSizeMB = DefaultMaxSizeMB
	}
	if r.MaxBackups <= 0 {
		r.MaxBackups = DefaultMaxBackups
	}
	if r.MaxAgeDays <= 0 {
		r.MaxAgeDays = DefaultMaxAgeDays
	}
	return r
}

type rotatingSink struct {
	*lumberjack.Logger
}

func (rotatingSink) Sync() error { return nil }

var (
	registerOnce sync.Once
	registerErr  error

	sinksMu sync.Mutex
	sinks   = map[string]rotatingSink{}
)

// registerRotateSink makes "rotate:<path>" a zap sink. Sinks are shared per
// path so output and error streams pointing at one file rotate together.
func registerRotateSink() error {
	registerOnce.Do(func() {
		registerErr = zap.RegisterSink(rotateScheme, func(u *url.URL) (zap.Sink, error) {
			path := u.Opaque
			if path == "" {
				path = u.Path
			}

			sinksMu.Lock()
			defer sinksMu.Unlock()
			if s, ok := sinks[path]; ok {
				return s, nil
			}

			q := u.Query()
			s := rotatingSink{&lumberjack.Logger{
				Filename:   path,
				MaxSize:    atoi(q.Get("max_size")),
				MaxBackups: atoi(q.Get("max_backups")),
				MaxAge:     atoi(q.Get("max_age")),
			}}
			sinks[path] = s
			return s, nil
		})
	})
	return registerErr
}

// rotatePaths routes plain file paths through the rotating sink. stdout,
// stderr and paths that already carry a scheme are kept as is.
func rotatePaths(paths []string, rc RotateConfig) []string {
	rc = rc.withDefaults()
	q := url.Values{}
	q.Set("max_size", strconv.Itoa(rc.MaxSizeMB))
	q.Set("max_backups", strconv.Itoa(rc.MaxBackups))
	q.Set("max_age", strconv.Itoa(rc.MaxAgeDays))

	out := make([]string, len(paths))
	for i, p := range paths {
		if p == "stdout" || p == "stderr" || strings.Contains(p, "://") {
			out[i] = p
			continue
		}
		out[i] = (&url.URL{Scheme: rotateScheme, Opaque: p, RawQuery: q.Encode()}).String()
	}
	return out
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
