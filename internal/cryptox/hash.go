// Package cryptox implements credkit's hashing primitives: the iterated
// SHA-512 hasher, salt generation, password derivation and constant-time
// comparison of derived credentials.
//
// The iteration count is part of every stored credential. Changing Rounds
// invalidates all of them.
package cryptox

import (
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
)

const (
	// Rounds is the system-wide iteration count shared by derivation and
	// verification.
	Rounds = 10

	// DigestHexLen is the length of every digest returned by Iterate.
	DigestHexLen = sha512.Size * 2
)

// Iterate hashes seed with SHA-512 and then re-hashes the hex digest,
// rounds times in total. suffix is appended to the value before every
// round, the first one included. A non-positive rounds is treated as one.
func Iterate(seed string, rounds int, suffix string) string {
	if rounds < 1 {
		rounds = 1
	}

	h := seed
	for i := 0; i < rounds; i++ {
		sum := sha512.Sum512([]byte(h + suffix))
		h = hex.EncodeToString(sum[:])
	}
	return h
}

// Hash is the unsalted iterated hash. Legacy call sites use it to hash
// arbitrary strings, and salt generation runs random bytes through it.
func Hash(input string) string {
	return Iterate(input, Rounds, "")
}

// Password derives the storable credential for password and salt. An empty
// salt gives the unsalted client-side pre-hash.
func Password(password, salt string) string {
	return Iterate(password, Rounds, salt)
}

// Equal reports whether two derived credentials match, in time that does
// not depend on where they differ.
func Equal(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
