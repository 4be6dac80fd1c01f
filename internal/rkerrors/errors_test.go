package rkerrors

import (
	"errors"
	"strings"
	"testing"
)

func TestFatalClassification(t *testing.T) {
	cases := map[Kind]bool{
		KindConfig:            true,
		KindProtocol:          true,
		KindValidationError:   true,
		KindTransport:         false,
		KindMirrorAnomaly:     false,
		KindOptimizerTimeout:  false,
		KindValidationWarning: false,
	}
	for k, want := range cases {
		if got := k.Fatal(); got != want {
			t.Errorf("%s.Fatal() = %v, want %v", k, got, want)
		}
	}
}

func TestIsMatchesKindThroughWrapping(t *testing.T) {
	cause := errors.New("boom")
	err := Transport("dial failed", cause)
	wrapped := errors.Join(err)

	if !Is(err, KindTransport) {
		t.Error("expected direct error to match KindTransport")
	}
	if !Is(wrapped, KindTransport) {
		t.Error("expected joined error to still match KindTransport")
	}
	if Is(err, KindConfig) {
		t.Error("did not expect KindConfig match")
	}
}

func TestErrorMessageIncludesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Config("failed to load network", cause)
	if got := err.Error(); got == "" {
		t.Fatal("expected non-empty message")
	}
	if got := err.Error(); !strings.Contains(got, cause.Error()) {
		t.Errorf("expected message %q to include cause %q", got, cause.Error())
	}
	if !errors.Is(err.Unwrap(), cause) {
		t.Error("expected Unwrap to expose the cause")
	}
}
