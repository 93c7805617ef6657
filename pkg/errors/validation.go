package errors

import (
	"math"
	"strings"
	"unicode"
)

// MaxDimension bounds container sizes accepted from callers.
const MaxDimension = 8192

// MaxMessageLength bounds a single chat message.
const MaxMessageLength = 4000

// ValidateDimensions checks a container size in pixels.
func ValidateDimensions(width, height int) error {
	if width <= 0 || height <= 0 {
		return New(ErrCodeInvalidDimension, "dimensions must be positive, got %dx%d", width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return New(ErrCodeInvalidDimension, "dimensions too large (max %d), got %dx%d", MaxDimension, width, height)
	}
	return nil
}

// ValidateCoordinate checks a latitude/longitude pair.
func ValidateCoordinate(lat, lng float64) error {
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return New(ErrCodeInvalidCoordinate, "coordinate must be finite, got (%v, %v)", lat, lng)
	}
	if lat < -90 || lat > 90 {
		return New(ErrCodeInvalidCoordinate, "latitude %v outside [-90, 90]", lat)
	}
	if lng < -180 || lng > 180 {
		return New(ErrCodeInvalidCoordinate, "longitude %v outside [-180, 180]", lng)
	}
	return nil
}

// ValidateIdentifier validates a hub or ring identifier.
//
// Identifiers end up in SVG id attributes and URLs, so the rules are
// conservative:
//   - No empty names
//   - No control characters
//   - No quotes or angle brackets
//   - Maximum length of 64 characters
func ValidateIdentifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return New(ErrCodeInvalidInput, "identifier cannot be empty")
	}
	if len(id) > 64 {
		return New(ErrCodeInvalidInput, "identifier too long (max 64 characters): %q", id)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "identifier contains control characters: %q", id)
		}
	}
	if strings.ContainsAny(id, `"'<>&`) {
		return New(ErrCodeInvalidInput, "identifier contains markup characters: %q", id)
	}
	return nil
}

// ValidateMessage validates a chat message before it is sent to the concierge.
func ValidateMessage(msg string) error {
	if strings.TrimSpace(msg) == "" {
		return New(ErrCodeInvalidInput, "message cannot be empty")
	}
	if len(msg) > MaxMessageLength {
		return New(ErrCodeInvalidInput, "message too long (max %d characters)", MaxMessageLength)
	}
	for _, r := range msg {
		if r == '\x00' {
			return New(ErrCodeInvalidInput, "message contains null bytes")
		}
	}
	return nil
}
