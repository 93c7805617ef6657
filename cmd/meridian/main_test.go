package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	merrors "github.com/bensonglobal/meridian/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		want    int
		wantOut string
	}{
		{"ok", nil, 0, ""},
		{"interrupt", fmt.Errorf("serve: %w", context.Canceled), 130, ""},
		{"validation", merrors.New(merrors.ErrCodeInvalidDimension, "width must be positive"), 2, "meridian: width must be positive"},
		{"other", errors.New("redis down"), 1, "meridian: redis down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if got := exitCode(&buf, tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
			if got := strings.TrimSpace(buf.String()); got != tt.wantOut {
				t.Errorf("output = %q, want %q", got, tt.wantOut)
			}
		})
	}
}
