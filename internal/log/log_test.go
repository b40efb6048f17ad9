package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want hclog.Level
	}{
		{in: "debug", want: hclog.Debug},
		{in: "TRACE", want: hclog.Trace},
		{in: " warn ", want: hclog.Warn},
		{in: "error", want: hclog.Error},
		{in: "", want: hclog.Info},
		{in: "loud", want: hclog.Info},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidLevel(t *testing.T) {
	if !ValidLevel("info") {
		t.Error("ValidLevel(info) = false, want true")
	}
	if ValidLevel("verbose") {
		t.Error("ValidLevel(verbose) = true, want false")
	}
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Level: "info", Output: &buf})

	logger.Debug("hidden")
	logger.Named("server").Info("listening", "addr", ":5001")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug line written at info level: %q", out)
	}
	for _, want := range []string{"like-that.server", "listening", "addr=:5001"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Options{Name: "test", Level: "debug", JSON: true, Output: &buf})

	logger.Debug("intent detected", "intent", "get_top_by_genre")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}
	if line["@message"] != "intent detected" {
		t.Errorf("@message = %v", line["@message"])
	}
	if line["@module"] != "test" {
		t.Errorf("@module = %v", line["@module"])
	}
	if line["intent"] != "get_top_by_genre" {
		t.Errorf("intent = %v", line["intent"])
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing happens")
	if logger.IsError() {
		t.Error("Discard().IsError() = true, want false")
	}
}
