// Package requestid mints opaque request identifiers.
package requestid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

func New() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Fallback builds a best-effort identifier for the rare case the random
// source is unavailable.
func Fallback(service string) string {
	return fmt.Sprintf("%s-%d", service, time.Now().UnixNano())
}
