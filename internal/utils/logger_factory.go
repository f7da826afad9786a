package utils

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	pathutils "github.com/temirov/shellexec/internal/utils/path"
)

const (
	logLevelDebugStringConstant            = "debug"
	logLevelInfoStringConstant             = "info"
	logLevelWarnStringConstant             = "warn"
	logLevelErrorStringConstant            = "error"
	logFormatStructuredStringConstant      = "structured"
	logFormatConsoleStringConstant         = "console"
	unsupportedLogLevelTemplateConstant    = "unsupported log level: %s"
	unsupportedLogFormatTemplateConstant   = "unsupported log format: %s"
	defaultLogFileMaxSizeMegabytesConstant = 10
	defaultLogFileMaxBackupsConstant       = 3
	defaultLogFileMaxAgeDaysConstant       = 28
)

// LogLevel enumerates supported logging granularities.
type LogLevel string

// Exported log level constants for reuse across packages.
const (
	LogLevelDebug LogLevel = LogLevel(logLevelDebugStringConstant)
	LogLevelInfo  LogLevel = LogLevel(logLevelInfoStringConstant)
	LogLevelWarn  LogLevel = LogLevel(logLevelWarnStringConstant)
	LogLevelError LogLevel = LogLevel(logLevelErrorStringConstant)
)

// LogFormat enumerates supported logger output encodings.
type LogFormat string

// Exported log format constants for reuse across packages.
const (
	LogFormatStructured LogFormat = LogFormat(logFormatStructuredStringConstant)
	LogFormatConsole    LogFormat = LogFormat(logFormatConsoleStringConstant)
)

// LogFileSettings configures an optional rotated log file written alongside standard error.
type LogFileSettings struct {
	Path           string
	MaxSizeMB      int
	MaxBackups     int
	MaxAgeDays     int
	DisableConsole bool
}

// LoggerFactory builds zap.Logger instances with consistent configuration.
type LoggerFactory struct {
	homeExpander *pathutils.HomeExpander
}

var logLevelMapping = map[LogLevel]zapcore.Level{
	LogLevelDebug: zapcore.DebugLevel,
	LogLevelInfo:  zapcore.InfoLevel,
	LogLevelWarn:  zapcore.WarnLevel,
	LogLevelError: zapcore.ErrorLevel,
}

var logFormatEncoderMapping = map[LogFormat]func(zapcore.EncoderConfig) zapcore.Encoder{
	LogFormatStructured: zapcore.NewJSONEncoder,
	LogFormatConsole:    zapcore.NewConsoleEncoder,
}

// NewLoggerFactory constructs a new logger factory.
func NewLoggerFactory() *LoggerFactory {
	return &LoggerFactory{homeExpander: pathutils.NewHomeExpander()}
}

// CreateLogger produces a zap.Logger honoring the requested log level and format that writes to standard error.
func (factory *LoggerFactory) CreateLogger(requestedLogLevel LogLevel, requestedLogFormat LogFormat) (*zap.Logger, error) {
	return factory.CreateLoggerWithFile(requestedLogLevel, requestedLogFormat, LogFileSettings{})
}

// CreateLoggerWithFile produces a zap.Logger that additionally writes to a size-rotated
// log file when fileSettings.Path is set.
func (factory *LoggerFactory) CreateLoggerWithFile(requestedLogLevel LogLevel, requestedLogFormat LogFormat, fileSettings LogFileSettings) (*zap.Logger, error) {
	zapLogLevel, levelExists := logLevelMapping[LogLevel(strings.ToLower(string(requestedLogLevel)))]
	if !levelExists {
		return nil, fmt.Errorf(unsupportedLogLevelTemplateConstant, requestedLogLevel)
	}

	encoderBuilder, formatExists := logFormatEncoderMapping[LogFormat(strings.ToLower(string(requestedLogFormat)))]
	if !formatExists {
		return nil, fmt.Errorf(unsupportedLogFormatTemplateConstant, requestedLogFormat)
	}

	encoder := encoderBuilder(zap.NewProductionEncoderConfig())
	levelEnabler := zap.NewAtomicLevelAt(zapLogLevel)

	cores := make([]zapcore.Core, 0, 2)
	logFilePath := strings.TrimSpace(fileSettings.Path)
	if !fileSettings.DisableConsole || len(logFilePath) == 0 {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), levelEnabler))
	}
	if len(logFilePath) > 0 {
		cores = append(cores, zapcore.NewCore(encoder.Clone(), zapcore.AddSync(factory.newRotatingFile(logFilePath, fileSettings)), levelEnabler))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}

func (factory *LoggerFactory) newRotatingFile(logFilePath string, fileSettings LogFileSettings) *lumberjack.Logger {
	homeExpander := factory.homeExpander
	if homeExpander == nil {
		homeExpander = pathutils.NewHomeExpander()
	}

	rotatingFile := &lumberjack.Logger{
		Filename:   homeExpander.Expand(logFilePath),
		MaxSize:    fileSettings.MaxSizeMB,
		MaxBackups: fileSettings.MaxBackups,
		MaxAge:     fileSettings.MaxAgeDays,
	}
	if rotatingFile.MaxSize <= 0 {
		rotatingFile.MaxSize = defaultLogFileMaxSizeMegabytesConstant
	}
	if rotatingFile.MaxBackups <= 0 {
		rotatingFile.MaxBackups = defaultLogFileMaxBackupsConstant
	}
	if rotatingFile.MaxAge <= 0 {
		rotatingFile.MaxAge = defaultLogFileMaxAgeDaysConstant
	}
	return rotatingFile
}
