package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	debugLog *log.Logger
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	logMutex sync.Mutex
)

func init() {
	// Sensible defaults so the package is usable before Init runs (tests, tools).
	debugLog = log.New(os.Stdout, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog = log.New(os.Stdout, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(os.Stdout, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime)
}

// Init wires the leveled loggers to stdout plus size-rotated files under logDir.
func Init(logDir string) {
	logMutex.Lock()
	defer logMutex.Unlock()

	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.Fatalf("Failed to create log directory: %v", err)
	}

	appFile := rotatingFile(filepath.Join(logDir, "app.log"))
	errorFile := rotatingFile(filepath.Join(logDir, "error.log"))

	stdWriter := io.MultiWriter(os.Stdout, appFile)
	errWriter := io.MultiWriter(os.Stderr, errorFile, appFile)

	debugLog = log.New(stdWriter, "DEBUG: ", log.Ldate|log.Ltime)
	infoLog = log.New(stdWriter, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(stdWriter, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errWriter, "ERROR: ", log.Ldate|log.Ltime)

	// Override Go's default log output as well.
	log.SetOutput(stdWriter)
}

func rotatingFile(path string) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    20, // MB
		MaxBackups: 5,
		MaxAge:     28, // days
		Compress:   true,
	}
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

func output(l *log.Logger, format string, v ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()
	l.Printf("[%s] %s", getCallerInfo(), fmt.Sprintf(format, v...))
}

func Debug(format string, v ...interface{}) {
	output(debugLog, format, v...)
}

func Info(format string, v ...interface{}) {
	output(infoLog, format, v...)
}

func Warn(format string, v ...interface{}) {
	output(warnLog, format, v...)
}

func Error(format string, v ...interface{}) {
	output(errorLog, format, v...)
}
