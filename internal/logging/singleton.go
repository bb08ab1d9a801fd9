package logging

import (
	"sync"
)

var (
	instance  *Logger
	once      sync.Once
	mu        sync.RWMutex
	logConfig *Config
)

// Configure sets the logging configuration.
// This should be called before any logger usage.
func Configure(config *Config) {
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
}

// GetLogger returns the singleton logger instance.
// If no config was provided via Configure(), it falls back to stdout at info level.
func GetLogger() *Logger {
	once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		cfg := logConfig
		if cfg == nil {
			cfg = DefaultConfig("")
		}

		var err error
		instance, err = NewLogger(cfg)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})

	return instance
}
