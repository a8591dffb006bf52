package parser

import (
	"fmt"
	"strings"
)

// NormalizePlate uppercases and trims a plate the way the remote
// registry stores it. Existence is checked by the server, not here.
func NormalizePlate(input string) (string, error) {
	plate := strings.ToUpper(strings.TrimSpace(input))
	if plate == "" {
		return "", fmt.Errorf("plate is required")
	}
	return plate, nil
}
