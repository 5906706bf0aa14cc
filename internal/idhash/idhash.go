// Package idhash derives the deterministic identifiers used for passengers and flights.
package idhash

import (
	"crypto/sha256"
	"encoding/hex"
	"hash/fnv"
	"strconv"
)

// Length is the number of hex characters kept from the digest.
const Length = 16

// UserID identifies a passenger by name and e-mail, independent of the flight.
func UserID(passengerName, passengerEmail string) string {
	return Digest(passengerName + passengerEmail)
}

// FlightID identifies a route operated by an airline. Swapping origin and
// destination yields a different id.
func FlightID(origin, destination, airline string) string {
	return Digest(origin + destination + airline)
}

// Digest returns the first Length hex characters of sha256(input). If the
// hash cannot be computed it falls back to a decimal FNV-1a hash of input.
func Digest(input string) string {
	h := sha256.New()
	if _, err := h.Write([]byte(input)); err != nil {
		return fallback(input)
	}
	return hex.EncodeToString(h.Sum(nil))[:Length]
}

func fallback(input string) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(input))
	return strconv.FormatUint(uint64(h.Sum32()), 10)
}
