package render

import (
	"testing"

	"github.com/bensonglobal/meridian/pkg/errors"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		target, format string
		want           string
		code           errors.Code
	}{
		{"orbital", "", FormatSVG, ""},
		{"orbital", " JSON ", FormatJSON, ""},
		{"market", "", FormatHTML, ""},
		{"nodelink", "dot", FormatDOT, ""},
		{"market", "svg", "", errors.ErrCodeInvalidFormat},
		{"tower", "svg", "", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.target+"/"+tt.format, func(t *testing.T) {
			got, err := ParseFormat(tt.target, tt.format)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Errorf("err = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseFormat() = %q, %v; want %q", got, err, tt.want)
			}
		})
	}
}

func TestContentType(t *testing.T) {
	if got := ContentType(FormatSVG); got != "image/svg+xml" {
		t.Errorf("ContentType(svg) = %q", got)
	}
	if got := ContentType(FormatDOT); got != "text/plain; charset=utf-8" {
		t.Errorf("ContentType(dot) = %q", got)
	}
}
