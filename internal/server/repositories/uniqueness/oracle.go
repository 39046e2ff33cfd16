// Package uniqueness implements tokens.Oracle over PostgreSQL, SQLite and
// process memory.
//
// Table and column names cannot be bound as query parameters, so every
// oracle first checks them against a conservative identifier pattern and
// then quotes them for its dialect.
package uniqueness

import (
	"fmt"
	"regexp"

	"github.com/dmitrijs2005/credkit/internal/common"
)

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// ValidateIdentifier rejects anything that is not a plain SQL identifier.
func ValidateIdentifier(names ...string) error {
	for _, n := range names {
		if len(n) > 63 || !identRe.MatchString(n) {
			return fmt.Errorf("%w: %q", common.ErrInvalidIdentifier, n)
		}
	}
	return nil
}
