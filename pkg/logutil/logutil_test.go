package logutil

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSetOutput(t *testing.T) {
	logger := GetLogger("[test] ")
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(io.Discard)

	logger.Println("hello")
	if !strings.Contains(buf.String(), "[test] ") || !strings.Contains(buf.String(), "hello") {
		t.Errorf("got log output %q, want prefix and message", buf.String())
	}
}

func TestSetOutputFile(t *testing.T) {
	logger := GetLogger("[file] ")
	fname := filepath.Join(t.TempDir(), "log")
	if err := SetOutputFile(fname); err != nil {
		t.Fatal(err)
	}
	logger.Println("to file")
	SetOutputFile("")

	data, err := os.ReadFile(fname)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "to file") {
		t.Errorf("log file contains %q, want message", data)
	}
}

func TestSetOutputFile_BadPath(t *testing.T) {
	err := SetOutputFile(filepath.Join(t.TempDir(), "no", "such", "dir", "log"))
	if err == nil {
		t.Errorf("SetOutputFile with a bad path returned nil error")
	}
}
