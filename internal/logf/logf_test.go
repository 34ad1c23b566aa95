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

package logf

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestPrintfAlsoToFile(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "test.log")
	if err := AlsoToFile(fileName); err != nil {
		t.Fatalf("opening log file: %s", err.Error())
	}
	defer closeFile()

	if _, err := Printf("hello %d\n", 42); err != nil {
		t.Fatalf("printf: %s", err.Error())
	}
	closeFile()

	content, err := ioutil.ReadFile(fileName)
	if err != nil {
		t.Fatalf("reading log file: %s", err.Error())
	}
	if !strings.Contains(string(content), "hello 42") {
		t.Errorf("log file content %q misses output", string(content))
	}
}

func TestWriterWithoutFile(t *testing.T) {
	logFile = nil
	if Writer() != os.Stdout {
		t.Error("writer without log file is not stdout")
	}
}
