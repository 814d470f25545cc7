package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateState returns a random OAuth state value
func GenerateState() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
