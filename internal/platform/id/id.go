package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator creates opaque identifiers. New habits get their ids from
// here rather than from callers, so uniqueness never depends on caller
// discipline.
type Generator interface {
	New() string
}

type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
