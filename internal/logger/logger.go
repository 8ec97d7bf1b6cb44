package logger

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

const maxBufferSize = 500

var (
	instance *Logger
	once     sync.Once
)

type Entry struct {
	Timestamp time.Time
	Message   string
}

// Logger writes to an append-only debug file and keeps a bounded in-memory
// buffer so the UI can show recent entries without touching the file.
type Logger struct {
	file    *os.File
	logger  *log.Logger
	mu      sync.Mutex
	buffer  []Entry
	enabled bool
}

// Init opens the debug log at logPath. An empty path disables file output;
// the in-memory buffer keeps working either way.
func Init(logPath string) error {
	var initErr error
	once.Do(func() {
		if logPath == "" {
			instance = &Logger{buffer: make([]Entry, 0, maxBufferSize)}
			return
		}

		file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			initErr = fmt.Errorf("failed to open log file: %w", err)
			return
		}

		instance = &Logger{
			file:    file,
			logger:  log.New(file, "", log.LstdFlags),
			buffer:  make([]Entry, 0, maxBufferSize),
			enabled: true,
		}
	})

	if instance == nil && initErr == nil {
		instance = &Logger{buffer: make([]Entry, 0, maxBufferSize)}
	}

	return initErr
}

func ensureInit() {
	if instance == nil {
		instance = &Logger{buffer: make([]Entry, 0, maxBufferSize)}
	}
}

func Close() error {
	if instance != nil && instance.file != nil {
		return instance.file.Close()
	}
	return nil
}

func write(message string) {
	ensureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	if len(instance.buffer) >= maxBufferSize {
		instance.buffer = instance.buffer[1:]
	}
	instance.buffer = append(instance.buffer, Entry{Timestamp: time.Now(), Message: message})

	if instance.enabled && instance.logger != nil {
		instance.logger.Println(message)
	}
}

func Log(message string, args ...interface{}) {
	write(fmt.Sprintf("[INFO] "+message, args...))
}

func LogError(operation string, err error) {
	write(fmt.Sprintf("[ERROR] %s: %v", operation, err))
}

func GetLogs() []Entry {
	ensureInit()
	instance.mu.Lock()
	defer instance.mu.Unlock()

	logs := make([]Entry, len(instance.buffer))
	copy(logs, instance.buffer)
	return logs
}
