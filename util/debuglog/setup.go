// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package debuglog configures Logrus to produce debug logs suitable for
// developers. The binaries call Configure early in main.
package debuglog

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Options control minor details of the log output.
type Options struct {
	// Use escape codes for colored output even if not attached to a TTY.
	ForceColors bool
	// The logger to configure. If nil, the Logrus standard (global) logger
	// is configured.
	Logger *logrus.Logger
}

// Configure sets up the given Logrus logger with full UTC timestamps and
// file:line caller information on every entry, then logs one entry so that
// misconfigured output is noticed right away.
func Configure(options Options) {
	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	logger.SetFormatter(&utcFormatter{wrapped: &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05.000000 MST",
		ForceColors:     options.ForceColors,
	}})
	logger.SetReportCaller(true)
	logger.AddHook(newFilenameHook())
	logger.WithFields(logrus.Fields{
		"forceColors": options.ForceColors,
	}).Info("Initialized Logrus")
}

// utcFormatter renders timestamps in UTC, no matter which zone the host is
// configured for.
type utcFormatter struct {
	wrapped logrus.Formatter
}

func (f *utcFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Time = entry.Time.UTC()
	return f.wrapped.Format(entry)
}

// filenameHook shortens the absolute filenames that runtime.Caller reports
// down to paths relative to the source tree, which keeps log lines readable.
type filenameHook struct {
	levels []logrus.Level
}

func newFilenameHook() *filenameHook {
	return &filenameHook{levels: logrus.AllLevels}
}

func (hook *filenameHook) Levels() []logrus.Level {
	return hook.levels
}

func (hook *filenameHook) Fire(entry *logrus.Entry) error {
	if entry.HasCaller() {
		file := entry.Caller.File
		if idx := strings.Index(file, "/src/"); idx >= 0 {
			file = file[idx+1:]
		} else if idx := strings.LastIndex(file, "/n3proof/"); idx >= 0 {
			file = file[idx+1:]
		}
		entry.Caller.File = file
	}
	return nil
}
