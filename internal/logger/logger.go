package logger

import (
	stdlog "log"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is a logger
type Logger struct {
	*zap.SugaredLogger
}

// New creates a new logger
func New(loglevel zapcore.Level) *Logger {
	// Configure console output.
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	consoleEncoder := zapcore.NewJSONEncoder(encoderConfig)

	// Log errors to stderr
	stderrLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= loglevel && lvl >= zapcore.ErrorLevel
	})

	stdoutLevel := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= loglevel && lvl < zapcore.ErrorLevel
	})
	stdout := zapcore.Lock(os.Stdout)
	stderr := zapcore.Lock(os.Stderr)

	// Merge the outputs, encoders, and level-handling functions
	core := zapcore.NewTee(
		zapcore.NewCore(consoleEncoder, stderr, stderrLevel),
		zapcore.NewCore(consoleEncoder, stdout, stdoutLevel),
	)

	// Construct our logger
	log := zap.New(core, zap.AddCaller())

	// Redirect stdlib log package to zap
	_, _ = zap.RedirectStdLogAt(log, zapcore.ErrorLevel)

	return &Logger{
		log.Sugar(),
	}
}

// Messages from net/http caused by misbehaving clients rather than the server
var clientErrorPrefixes = []string{
	"http: URL query contains semicolon",
	"http: TLS handshake error",
}

type httpErrorLog struct {
	log *Logger
}

func (h *httpErrorLog) Write(p []byte) (int, error) {
	m := strings.TrimSuffix(string(p), "\n")

	for _, prefix := range clientErrorPrefixes {
		if strings.HasPrefix(m, prefix) {
			h.log.Debug(m)
			return len(p), nil
		}
	}

	h.log.Error(m)
	return len(p), nil
}

// NewHTTPErrorLog returns a log.Logger for http.Server.ErrorLog, logging client errors at debug level
func NewHTTPErrorLog(logger *Logger) *stdlog.Logger {
	return stdlog.New(&httpErrorLog{logger}, "", 0)
}
