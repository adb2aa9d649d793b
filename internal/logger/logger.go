package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
)

type LogLevel int

const (
	INFO LogLevel = iota
	WARN
	ERROR
	DEBUG
)

var prefixes = map[LogLevel]string{
	INFO:  "INFO:  ",
	WARN:  "WARN:  ",
	ERROR: "ERROR: ",
	DEBUG: "DEBUG: ",
}

type Logger struct {
	loggers map[LogLevel]*log.Logger
	file    *os.File
}

// Init opens logPath for appending. An empty logPath discards everything.
func (l *Logger) Init(logPath string) error {
	var out io.Writer = io.Discard
	if logPath != "" {
		if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		l.file = file
		out = file
	}

	l.loggers = make(map[LogLevel]*log.Logger, len(prefixes))
	for level, prefix := range prefixes {
		l.loggers[level] = log.New(out, prefix, log.Ldate|log.Ltime)
	}
	return nil
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

func (l *Logger) println(level LogLevel, v ...any) {
	if lg, ok := l.loggers[level]; ok {
		lg.Println(v...)
	}
}

func (l *Logger) printf(level LogLevel, format string, v ...any) {
	if lg, ok := l.loggers[level]; ok {
		lg.Printf(format, v...)
	}
}

func (l *Logger) Info(v ...any) {
	l.println(INFO, v...)
}

func (l *Logger) Infof(format string, v ...any) {
	l.printf(INFO, format, v...)
}

func (l *Logger) Warn(v ...any) {
	l.println(WARN, v...)
}

func (l *Logger) Warnf(format string, v ...any) {
	l.printf(WARN, format, v...)
}

func (l *Logger) Error(v ...any) {
	l.println(ERROR, v...)
}

func (l *Logger) Errorf(format string, v ...any) {
	l.printf(ERROR, format, v...)
}

func (l *Logger) Debug(v ...any) {
	l.println(DEBUG, v...)
}

func (l *Logger) Debugf(format string, v ...any) {
	l.printf(DEBUG, format, v...)
}
