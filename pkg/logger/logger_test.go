package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
)

func TestInit_ServiceFieldAndLevel(t *testing.T) {
	Reset()
	t.Cleanup(func() {
		Reset()
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var buf bytes.Buffer
	log := Init(Options{Level: "warn", Output: &buf, Service: "shop-api"})

	log.Info().Msg("dropped")
	if buf.Len() != 0 {
		t.Fatalf("info entry should be filtered at warn level, got %s", buf.String())
	}

	log.Warn().Msg("kept")
	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if entry["service"] != "shop-api" {
		t.Errorf("service: got %v", entry["service"])
	}
	if entry["message"] != "kept" {
		t.Errorf("message: got %v", entry["message"])
	}
}

func TestInit_OnlyFirstCallApplies(t *testing.T) {
	Reset()
	t.Cleanup(func() {
		Reset()
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	})

	var first, second bytes.Buffer
	Init(Options{Output: &first})
	Init(Options{Output: &second})

	l := Get()
	l.Info().Msg("hello")
	if first.Len() == 0 || second.Len() != 0 {
		t.Fatalf("expected output only on the first writer")
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zerolog.Level{
		"trace":   zerolog.TraceLevel,
		"DEBUG":   zerolog.DebugLevel,
		" warn ":  zerolog.WarnLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"":        zerolog.InfoLevel,
		"bogus":   zerolog.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %s, want %s", in, got, want)
		}
	}
}
