package cryptox

import (
	"github.com/dmitrijs2005/credkit/internal/randx"
)

// SaltEntropyBytes is how much randomness goes into one salt.
const SaltEntropyBytes = 512

// GenerateSalt draws SaltEntropyBytes from src and returns their iterated
// hash. The only failure is src's (common.ErrEntropyUnavailable).
func GenerateSalt(src randx.Source) (string, error) {
	b, err := src.Read(SaltEntropyBytes)
	if err != nil {
		return "", err
	}
	defer randx.Wipe(b)

	return Hash(string(b)), nil
}
