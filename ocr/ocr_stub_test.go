//go:build !ocr

package ocr

import (
	"errors"
	"testing"
)

func TestStubReturnsNotEnabled(t *testing.T) {
	client, err := New()
	if !errors.Is(err, ErrNotEnabled) {
		t.Errorf("New error = %v, want ErrNotEnabled", err)
	}
	if client != nil {
		t.Error("stub New should return a nil client")
	}
	if Enabled {
		t.Error("Enabled should be false without the ocr build tag")
	}

	var c *Client
	if err := c.Close(); err != nil {
		t.Errorf("Close on nil client: %v", err)
	}
	if _, err := c.RecognizePage(nil); !errors.Is(err, ErrNotEnabled) {
		t.Errorf("RecognizePage error = %v, want ErrNotEnabled", err)
	}
}
