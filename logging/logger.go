package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/crytic/huffgen/logging/colors"
	"github.com/rs/zerolog"
)

// GlobalLogger describes a Logger that is disabled by default and is replaced by the CLI once the project
// configuration is known. Each package should derive its own sub-logger from it so that output is grep-able by module.
var GlobalLogger = NewLogger(zerolog.Disabled, false)

// Logger describes a custom logging object that can log events to any arbitrary channel and can handle specialized
// output to console as well.
type Logger struct {
	// level describes the log level
	level zerolog.Level

	// multiLogger describes a logger that will be used to output logs to any arbitrary channel(s) in either structured
	// or unstructured format.
	multiLogger zerolog.Logger

	// consoleLogger describes a logger that will be used to output unstructured, colorized output to console.
	consoleLogger zerolog.Logger

	// context holds the key-value pairs this logger was derived with, so that writers added later keep them.
	context [][2]string

	// writers describes a list of io.Writer objects where log output will go.
	writers []io.Writer
}

// LogFormat describes what format to log in
type LogFormat string

const (
	// STRUCTURED describes that logging should be done in structured JSON format
	STRUCTURED LogFormat = "structured"
	// UNSTRUCTURED describes that logging should be done in an unstructured format
	UNSTRUCTURED LogFormat = "unstructured"
)

// StructuredLogInfo describes a key-value mapping that can be used to log structured data
type StructuredLogInfo map[string]any

// NewLogger will create a new Logger object with a specific log level. The Logger can output to console, if enabled,
// and output logs to any number of arbitrary io.Writer channels.
func NewLogger(level zerolog.Level, consoleEnabled bool, writers ...io.Writer) *Logger {
	// Both base loggers start disabled so that a logger without any channel is still safe to use
	baseMultiLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)
	baseConsoleLogger := zerolog.New(os.Stdout).Level(zerolog.Disabled)

	if len(writers) > 0 {
		baseMultiLogger = zerolog.New(zerolog.MultiLevelWriter(writers...)).Level(level).With().Timestamp().Logger()
	}

	if consoleEnabled {
		consoleWriter := setupDefaultFormatting(zerolog.ConsoleWriter{Out: os.Stdout}, level)
		baseConsoleLogger = zerolog.New(consoleWriter).Level(level)
	}

	return &Logger{
		level:         level,
		multiLogger:   baseMultiLogger,
		consoleLogger: baseConsoleLogger,
		writers:       writers,
	}
}

// NewSubLogger will create a new Logger with unique context in the form of a key-value pair. The expected use of this
// function is for each package (and each codegen session) to have their own logger.
func (l *Logger) NewSubLogger(key string, value string) *Logger {
	context := make([][2]string, 0, len(l.context)+1)
	context = append(context, l.context...)
	context = append(context, [2]string{key, value})

	return &Logger{
		level:         l.level,
		multiLogger:   l.multiLogger.With().Str(key, value).Logger(),
		consoleLogger: l.consoleLogger.With().Str(key, value).Logger(),
		context:       context,
		writers:       l.writers,
	}
}

// AddWriter will add a writer to the list of channels where log output will be sent. Adding a writer twice is a no-op.
func (l *Logger) AddWriter(writer io.Writer, format LogFormat) {
	for _, w := range l.writers {
		if writer == w {
			return
		}
	}

	// Unstructured output is wrapped into a console writer without ANSI coloring
	if format == UNSTRUCTURED {
		writer = zerolog.ConsoleWriter{Out: writer, NoColor: true}
	}

	l.writers = append(l.writers, writer)
	l.rebuildMultiLogger()
}

// RemoveWriter will remove a writer from the list of writers that the logger manages. If the writer does not exist, this
// function is a no-op.
func (l *Logger) RemoveWriter(writer io.Writer) {
	for i, w := range l.writers {
		if writer == w {
			l.writers = append(l.writers[:i], l.writers[i+1:]...)
			l.rebuildMultiLogger()
			return
		}
	}
}

// rebuildMultiLogger recreates the multi logger from the current writer list and context.
func (l *Logger) rebuildMultiLogger() {
	if len(l.writers) == 0 {
		l.multiLogger = zerolog.New(os.Stdout).Level(zerolog.Disabled)
		return
	}
	ctx := zerolog.New(zerolog.MultiLevelWriter(l.writers...)).Level(l.level).With().Timestamp()
	for _, kv := range l.context {
		ctx = ctx.Str(kv[0], kv[1])
	}
	l.multiLogger = ctx.Logger()
}

// Level will get the log level of the Logger
func (l *Logger) Level() zerolog.Level {
	return l.level
}

// SetLevel will update the log level of the Logger
func (l *Logger) SetLevel(level zerolog.Level) {
	l.level = level
	l.multiLogger = l.multiLogger.Level(level)
	l.consoleLogger = l.consoleLogger.Level(level)
}

// Trace is a wrapper function that will log a trace event
func (l *Logger) Trace(args ...any) {
	l.emit(l.consoleLogger.Trace(), l.multiLogger.Trace(), l.level <= zerolog.DebugLevel, args...)
}

// Debug is a wrapper function that will log a debug event
func (l *Logger) Debug(args ...any) {
	l.emit(l.consoleLogger.Debug(), l.multiLogger.Debug(), l.level <= zerolog.DebugLevel, args...)
}

// Info is a wrapper function that will log an info event
func (l *Logger) Info(args ...any) {
	l.emit(l.consoleLogger.Info(), l.multiLogger.Info(), l.level <= zerolog.DebugLevel, args...)
}

// Warn is a wrapper function that will log a warning event
func (l *Logger) Warn(args ...any) {
	l.emit(l.consoleLogger.Warn(), l.multiLogger.Warn(), l.level <= zerolog.DebugLevel, args...)
}

// Error is a wrapper function that will log an error event
func (l *Logger) Error(args ...any) {
	l.emit(l.consoleLogger.Error(), l.multiLogger.Error(), l.level <= zerolog.DebugLevel, args...)
}

// Panic is a wrapper function that will log a panic event
func (l *Logger) Panic(args ...any) {
	l.emit(l.consoleLogger.Panic(), l.multiLogger.Panic(), true, args...)
}

// emit builds the console and multi-channel messages from args, chains any error or structured info and sends the
// events off.
func (l *Logger) emit(consoleLog *zerolog.Event, multiLog *zerolog.Event, withStack bool, args ...any) {
	consoleMsg, multiMsg, err, info := buildMsgs(args...)

	// Note that even if err is nil, there will not be a panic here
	consoleLog.Err(err)
	multiLog.Err(err)
	if withStack && err != nil {
		consoleLog.Stack()
		multiLog.Stack()
	}

	if info != nil {
		consoleLog.Any("info", info)
		multiLog.Any("info", info)
	}

	// The multi logger is deferred so that a panic log still reaches every channel
	defer multiLog.Msg(multiMsg)
	consoleLog.Msg(consoleMsg)
}

// buildMsgs takes a variadic list of arguments of any type and returns a colorized string for the console, a plain
// string for other channels and, optionally, an error and a StructuredLogInfo object found among the arguments.
func buildMsgs(args ...any) (string, string, error, StructuredLogInfo) {
	if len(args) == 0 {
		return "", "", nil, nil
	}

	colorCtx := colors.Reset
	consoleOutput := make([]string, 0, len(args))
	fileOutput := make([]string, 0, len(args))
	var info StructuredLogInfo
	var err error

	for _, arg := range args {
		switch t := arg.(type) {
		case colors.ColorFunc:
			colorCtx = t
		case StructuredLogInfo:
			// Only one structured log info can be provided for each log message
			info = t
		case error:
			// Only one error can be provided for each log message
			err = t
		default:
			consoleOutput = append(consoleOutput, colorCtx(t))
			fileOutput = append(fileOutput, fmt.Sprintf("%v", t))
		}
	}

	return strings.Join(consoleOutput, ""), strings.Join(fileOutput, ""), err, info
}

// setupDefaultFormatting will update the console logger's formatting to the huffgen standard
func setupDefaultFormatting(writer zerolog.ConsoleWriter, level zerolog.Level) zerolog.ConsoleWriter {
	// Get rid of the timestamp for console output
	writer.FormatTimestamp = func(i any) string {
		return ""
	}

	writer.FormatLevel = func(i any) string {
		levelStr, _ := i.(string)
		parsed, err := zerolog.ParseLevel(levelStr)
		if err != nil {
			return levelStr
		}

		switch parsed {
		case zerolog.TraceLevel:
			return colors.CyanBold(zerolog.LevelTraceValue)
		case zerolog.DebugLevel:
			return colors.BlueBold(zerolog.LevelDebugValue)
		case zerolog.InfoLevel:
			return colors.GreenBold(colors.LEFT_ARROW)
		case zerolog.WarnLevel:
			return colors.YellowBold(zerolog.LevelWarnValue)
		case zerolog.ErrorLevel, zerolog.FatalLevel, zerolog.PanicLevel:
			return colors.RedBold(levelStr)
		default:
			return levelStr
		}
	}

	// Above debug level, module and session tags are noise on the console
	if level > zerolog.DebugLevel {
		writer.FieldsExclude = []string{"module", "session"}
	}

	return writer
}
