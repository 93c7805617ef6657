package render

import (
	"slices"
	"strings"

	"github.com/bensonglobal/meridian/pkg/errors"
)

// Render targets.
const (
	TargetOrbital  = "orbital"
	TargetNetwork  = "network"
	TargetNodeLink = "nodelink"
	TargetMarket   = "market"
)

// Targets lists every render target.
func Targets() []string {
	return []string{TargetOrbital, TargetNetwork, TargetNodeLink, TargetMarket}
}

// Output formats.
const (
	FormatSVG  = "svg"
	FormatJSON = "json"
	FormatDOT  = "dot"
	FormatHTML = "html"
	FormatPNG  = "png"
)

// Formats lists the formats each target supports, default first.
var Formats = map[string][]string{
	TargetOrbital:  {FormatSVG, FormatJSON},
	TargetNetwork:  {FormatSVG, FormatJSON},
	TargetNodeLink: {FormatSVG, FormatDOT, FormatPNG},
	TargetMarket:   {FormatHTML, FormatPNG},
}

// ParseFormat normalizes format for target. Empty selects the default.
func ParseFormat(target, format string) (string, error) {
	supported, ok := Formats[target]
	if !ok {
		return "", errors.New(errors.ErrCodeInvalidInput, "unknown render target %q", target)
	}
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return supported[0], nil
	}
	if !slices.Contains(supported, format) {
		return "", errors.New(errors.ErrCodeInvalidFormat, "%s does not support %q (want one of %s)",
			target, format, strings.Join(supported, ", "))
	}
	return format, nil
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatJSON:
		return "application/json"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPNG:
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}
