package internal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestShowProgress(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name    string
		message string
		fn      func() error
		wantErr bool
	}{
		{
			name:    "successful function",
			message: "Sending",
			fn: func() error {
				return nil
			},
			wantErr: false,
		},
		{
			name:    "function with error",
			message: "Sending",
			fn: func() error {
				return errors.New("test error")
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ShowProgress(ctx, tt.message, tt.fn)
			if (err != nil) != tt.wantErr {
				t.Errorf("ShowProgress() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestShowProgressSimple(t *testing.T) {
	var buf bytes.Buffer
	err := showProgressSimple(context.Background(), &buf, "Waiting for reply", func() error {
		time.Sleep(250 * time.Millisecond)
		return errors.New("backend down")
	})
	if err == nil {
		t.Fatal("showProgressSimple() should return the function error")
	}
	if !strings.Contains(buf.String(), "Waiting for reply") {
		t.Errorf("spinner output should contain the message, got %q", buf.String())
	}
}

func TestShowProgressSimple_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	var buf bytes.Buffer
	err := showProgressSimple(ctx, &buf, "Sending", func() error {
		time.Sleep(200 * time.Millisecond)
		return nil
	})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("showProgressSimple() error = %v, want context.DeadlineExceeded", err)
	}
}

func TestIsTerminal(t *testing.T) {
	if IsTerminal(&bytes.Buffer{}) {
		t.Error("IsTerminal() should be false for a buffer")
	}
}

func TestPrintHelpers_NonTerminal(t *testing.T) {
	var buf bytes.Buffer
	PrintSuccess(&buf, "saved")
	PrintError(&buf, "failed")
	PrintInfo(&buf, "info")
	PrintWarning(&buf, "careful")

	out := buf.String()
	for _, want := range []string{"saved", "ERROR: failed", "info", "WARNING: careful"} {
		if !strings.Contains(out, want) {
			t.Errorf("output should contain %q, got %q", want, out)
		}
	}
}
