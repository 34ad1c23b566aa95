// Copyright (C) 2026 The defringe authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package logf provides the singleton log writer. Writes to stdout, and
// optionally to a file. Does not add prefixes, or force newlines
package logf

import (
	"fmt"
	"io"
	"os"

	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// The optional additional file to log into
var logFile io.WriteCloser

// Enables logging to a file, truncating any previous content
func AlsoToFile(fileName string) (err error) {
	if err = closeFile(); err != nil {
		return err
	}
	logFile, err = os.OpenFile(fileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	return err
}

// Enables logging to a size-rotated file, for long-running server use
func AlsoToRotatingFile(fileName string, maxSizeMB, maxBackups int) error {
	if err := closeFile(); err != nil {
		return err
	}
	logFile = &lumberjack.Logger{
		Filename:   fileName,
		MaxSize:    maxSizeMB,
		MaxBackups: maxBackups,
	}
	return nil
}

func closeFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// Returns the current log destination as a writer: stdout, plus the log
// file if one is set
func Writer() io.Writer {
	if logFile == nil {
		return os.Stdout
	}
	return io.MultiWriter(os.Stdout, logFile)
}

func Printf(format string, args ...interface{}) (n int, err error) {
	n, err = fmt.Printf(format, args...)
	if err != nil || logFile == nil {
		return n, err
	}
	return fmt.Fprintf(logFile, format, args...)
}

func Fatalf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
	if logFile != nil {
		fmt.Fprintf(logFile, format, args...)
		logFile.Close()
	}
	os.Exit(1)
}
