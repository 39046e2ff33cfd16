package uniqueness

import (
	"context"
	"sync"
)

type key struct {
	table, column, value string
}

// MemoryOracle keeps values in a set, for tests and callers whose tokens
// never outlive the process.
type MemoryOracle struct {
	mu     sync.RWMutex
	values map[key]struct{}
}

func NewMemoryOracle() *MemoryOracle {
	return &MemoryOracle{values: make(map[key]struct{})}
}

func (o *MemoryOracle) Exists(_ context.Context, table, column, value string) (bool, error) {
	if err := ValidateIdentifier(table, column); err != nil {
		return false, err
	}

	o.mu.RLock()
	defer o.mu.RUnlock()
	_, ok := o.values[key{table, column, value}]
	return ok, nil
}

// Add records value and reports whether it was new, so Add doubles as an
// atomic insert for tokens.Generator.Reserve.
func (o *MemoryOracle) Add(table, column, value string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	k := key{table, column, value}
	if _, ok := o.values[k]; ok {
		return false
	}
	o.values[k] = struct{}{}
	return true
}

// Len returns how many values are stored for table.column.
func (o *MemoryOracle) Len(table, column string) int {
	o.mu.RLock()
	defer o.mu.RUnlock()

	n := 0
	for k := range o.values {
		if k.table == table && k.column == column {
			n++
		}
	}
	return n
}
