package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/MereWhiplash/wordspace/internal/logging"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "info", "json")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("hello", "word", "king")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if entry["msg"] != "hello" {
		t.Errorf("expected msg 'hello', got %v", entry["msg"])
	}
	if entry["word"] != "king" {
		t.Errorf("expected word 'king', got %v", entry["word"])
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(&buf, "warn", "text")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	logger.Info("quiet")
	logger.Warn("loud")

	out := buf.String()
	if strings.Contains(out, "quiet") {
		t.Errorf("expected info to be filtered, got %q", out)
	}
	if !strings.Contains(out, "loud") {
		t.Errorf("expected warn to be logged, got %q", out)
	}
}

func TestNew_Invalid(t *testing.T) {
	var buf bytes.Buffer
	if _, err := logging.New(&buf, "loudest", "text"); err == nil {
		t.Error("expected error for invalid level")
	}
	if _, err := logging.New(&buf, "info", "xml"); err == nil {
		t.Error("expected error for invalid format")
	}
}
