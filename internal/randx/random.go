// Package randx supplies cryptographically secure random bytes.
//
// Every byte comes from crypto/rand. If the operating system source cannot
// be read the caller gets common.ErrEntropyUnavailable; there is no fallback
// to a weaker generator.
package randx

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/dmitrijs2005/credkit/internal/common"
)

// Source returns n random bytes.
type Source interface {
	Read(n int) ([]byte, error)
}

// CryptoSource reads from an io.Reader that is expected to be a CSPRNG.
// The zero value reads from crypto/rand.Reader.
type CryptoSource struct {
	r io.Reader
}

// Default is the process-wide OS-backed source.
var Default Source = CryptoSource{}

// NewReaderSource wraps r. It exists so tests can inject a failing reader.
func NewReaderSource(r io.Reader) CryptoSource {
	return CryptoSource{r: r}
}

func (s CryptoSource) Read(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("random bytes: %w: %d", common.ErrInvalidLength, n)
	}

	r := s.r
	if r == nil {
		r = rand.Reader
	}

	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrEntropyUnavailable, err)
	}
	return b, nil
}

// HexString reads size bytes from src and hex-encodes them, so the result is
// twice as long as size.
func HexString(src Source, size int) (string, error) {
	b, err := src.Read(size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// Wipe overwrites b with zeros. Nil is a no-op.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
