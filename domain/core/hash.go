package core

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
)

// Hash represents a cryptographic hash
type Hash string

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// Short returns the first 12 hex characters, for display.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// ComputeTableHash fingerprints an abundance table from its column names and
// counts, so two runs over identical data can be matched regardless of file
// format or site labels.
func ComputeTableHash(species []string, counts [][]float64) Hash {
	h := sha256.New()
	for _, name := range species {
		h.Write([]byte(name))
		h.Write([]byte{0})
	}
	h.Write([]byte{'\n'})
	for _, row := range counts {
		for _, c := range row {
			h.Write(strconv.AppendFloat(nil, c, 'g', -1, 64))
			h.Write([]byte{','})
		}
		h.Write([]byte{'\n'})
	}
	return Hash(hex.EncodeToString(h.Sum(nil)))
}
