package gemini

import (
	"testing"
)

func TestIsModelSupported(t *testing.T) {
	supported := []string{
		"gemini-2.5-flash",
		"gemini-2.5-pro",
		"gemini-1.5-flash",
	}

	for _, model := range supported {
		if !IsModelSupported(model) {
			t.Errorf("model %q should be supported", model)
		}
	}

	unsupported := []string{
		"gemini-1.0-pro",
		"gpt-4",
		"invalid",
	}

	for _, model := range unsupported {
		if IsModelSupported(model) {
			t.Errorf("model %q should not be supported", model)
		}
	}
}

func TestDefaultModel(t *testing.T) {
	if DefaultModel != "gemini-2.5-flash" {
		t.Errorf("DefaultModel = %q, want %q", DefaultModel, "gemini-2.5-flash")
	}
	if !IsModelSupported(DefaultModel) {
		t.Error("default model should be in the supported list")
	}
}

func TestNewClientNoKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := NewClient(DefaultModel); err == nil {
		t.Fatal("expected error without API key")
	}
}
