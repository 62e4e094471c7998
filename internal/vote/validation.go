package vote

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	Red   = "Red"
	Green = "Green"
	Blue  = "Blue"
)

var (
	// AllowedColors is the canonical color order. It is also the order used
	// to break ties between colors with the same count.
	AllowedColors = []string{Red, Green, Blue}

	// ErrInvalidColor occurs when a color is not one of AllowedColors.
	ErrInvalidColor = errors.New("Invalid color")
)

// ValidateColor returns an error naming the color when it is not an exact,
// case sensitive match for one of AllowedColors.
func ValidateColor(color string) error {
	if IsAllowedColor(color) {
		return nil
	}

	return errors.Wrap(ErrInvalidColor, fmt.Sprintf("'%s'", color))
}

// IsAllowedColor returns true if color may be voted for.
func IsAllowedColor(color string) bool {
	for _, allowed := range AllowedColors {
		if color == allowed {
			return true
		}
	}

	return false
}
