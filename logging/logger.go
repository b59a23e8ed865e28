// Copyright 2024 The Solaris Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

type (
	// Logger interface exposes some methods for application logging
	Logger interface {
		// Errorf is a function for printing Error-level messages from the source code
		Errorf(format string, args ...interface{})
		// Warnf is a function for printing Warn-level messages from the source code
		Warnf(format string, args ...interface{})
		// Infof is a function for printing Info-level messages from the source code
		Infof(format string, args ...interface{})
		// Debugf is a function for printing Debug-level messages from the source code
		Debugf(format string, args ...interface{})
		// Tracef is a function for printing Trace-level messages from the source code
		Tracef(format string, args ...interface{})
	}

	// Config struct allows to overwrite the current logger settings
	Config struct {
		// NewLoggerF points to the function to construct new Logger
		NewLoggerF func(loggerName string) Logger
	}

	// Level is one of ERROR, WARN, INFO, DEBUG, or TRACE
	Level int32

	stdLogger struct {
		name   string
		writer io.Writer
	}
)

const (
	ERROR Level = iota
	WARN
	INFO
	DEBUG
	TRACE
)

var (
	cfg atomic.Value

	stdMx    sync.Mutex
	stdLevel int32 = int32(INFO)
	levels         = map[Level]string{ERROR: "ERROR", WARN: "WARN", INFO: "INFO", DEBUG: "DEBUG", TRACE: "TRACE"}
)

func init() {
	// init with the std logger
	SetConfig(Config{NewLoggerF: stdNewLogger})
}

// NewLogger returns the new instance of Logger for the caller name.
func NewLogger(loggerName string) Logger {
	return cfg.Load().(Config).NewLoggerF(loggerName)
}

// SetConfig allows to overwrite the current logger settings
func SetConfig(c Config) {
	cfg.Store(c)
}

// SetLevel allows to set the level for the std logger
func SetLevel(lvl Level) {
	atomic.StoreInt32(&stdLevel, int32(lvl))
}

// GetLevel returns the current std logger level
func GetLevel() Level {
	return Level(atomic.LoadInt32(&stdLevel))
}

func stdNewLogger(name string) Logger {
	return &stdLogger{name: name, writer: os.Stdout}
}

func (sl *stdLogger) Errorf(format string, args ...interface{}) { sl.logf(ERROR, format, args...) }
func (sl *stdLogger) Warnf(format string, args ...interface{})  { sl.logf(WARN, format, args...) }
func (sl *stdLogger) Infof(format string, args ...interface{})  { sl.logf(INFO, format, args...) }
func (sl *stdLogger) Debugf(format string, args ...interface{}) { sl.logf(DEBUG, format, args...) }
func (sl *stdLogger) Tracef(format string, args ...interface{}) { sl.logf(TRACE, format, args...) }

func (sl *stdLogger) logf(lvl Level, format string, args ...interface{}) {
	if GetLevel() < lvl {
		return
	}
	stdMx.Lock()
	fmt.Fprint(sl.writer, "[", time.Now().Format("15:04:05.000000"), "] ", levels[lvl], "\t", sl.name, ": ")
	fmt.Fprintf(sl.writer, format, args...)
	fmt.Fprintln(sl.writer)
	stdMx.Unlock()
}
