package cryptox

import (
	"encoding/hex"
	"fmt"

	"github.com/dmitrijs2005/credkit/internal/common"
	"golang.org/x/crypto/argon2"
)

const (
	KDFIterated = "sha512-iterated"
	KDFArgon2id = "argon2id"
)

// Deriver turns a password and a salt into a storable credential. Name is
// persisted next to the credential so verification picks the same Deriver.
type Deriver interface {
	Name() string
	Derive(password, salt string) string
}

// IteratedDeriver is the legacy scheme: Password with Rounds iterations.
type IteratedDeriver struct{}

func (IteratedDeriver) Name() string { return KDFIterated }

func (IteratedDeriver) Derive(password, salt string) string {
	return Password(password, salt)
}

// Argon2idDeriver is the memory-hard replacement for IteratedDeriver. It
// keeps the same contract: the salt is the string produced by GenerateSalt
// and the output is hex.
type Argon2idDeriver struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
}

// NewArgon2idDeriver returns a deriver with the parameters used for stored
// credentials. They must not change once accounts exist.
func NewArgon2idDeriver() Argon2idDeriver {
	return Argon2idDeriver{Time: 1, Memory: 64 * 1024, Threads: 4, KeyLen: 64}
}

func (Argon2idDeriver) Name() string { return KDFArgon2id }

func (d Argon2idDeriver) Derive(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), d.Time, d.Memory, d.Threads, d.KeyLen)
	return hex.EncodeToString(key)
}

// LookupDeriver maps a persisted KDF name to its Deriver. An empty name is
// the legacy scheme, since rows written before the column existed have none.
func LookupDeriver(name string) (Deriver, error) {
	switch name {
	case KDFIterated, "":
		return IteratedDeriver{}, nil
	case KDFArgon2id:
		return NewArgon2idDeriver(), nil
	default:
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownKDF, name)
	}
}
