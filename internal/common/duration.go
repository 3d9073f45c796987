package common

import (
	"fmt"
	"strings"
	"time"
)

// ParseOptionalDuration parses a duration string where "" and "0" mean disabled (zero).
func ParseOptionalDuration(value string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "0" {
		return 0, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid duration '%s': %w", value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("duration '%s' must not be negative", value)
	}
	return d, nil
}
