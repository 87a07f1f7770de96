// ledger.go - Append-only record of spent serial numbers.
//
// The ledger is the minimal double-spend surface the library exposes to the
// node: a spend whose circuit verifies is recorded by its serial number, and
// a repeated serial number is rejected. Persisted as a single JSON file.
//
// NOTE: Ledger is not thread-safe by itself; guard concurrent access with a
// sync.Mutex.

package zerocoin

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// Ledger records the serial numbers of every spent coin.
type Ledger struct {
	SnList []Scalar `json:"sn_list"`
}

// NewLedger creates a new, empty ledger.
func NewLedger() *Ledger {
	return &Ledger{SnList: make([]Scalar, 0)}
}

// AppendSpend records a verified spend's serial number. Returns an error if
// the serial number is already present.
func (l *Ledger) AppendSpend(serial Scalar) error {
	if l.HasSerialNumber(serial) {
		return errors.New("double-spend detected: serial number already in ledger")
	}
	l.SnList = append(l.SnList, serial)
	return nil
}

// HasSerialNumber returns true if the serial number was already spent.
func (l *Ledger) HasSerialNumber(serial Scalar) bool {
	for _, s := range l.SnList {
		if s.Equal(serial) {
			return true
		}
	}
	return false
}

// SaveToFile saves the ledger to a JSON file, overwriting it if it exists.
func (l *Ledger) SaveToFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create ledger file: %w", err)
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(l)
}

// LoadLedgerFromFile loads a ledger from a JSON file.
func LoadLedgerFromFile(path string) (*Ledger, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger file: %w", err)
	}
	defer f.Close()
	var l Ledger
	if err := json.NewDecoder(f).Decode(&l); err != nil {
		return nil, fmt.Errorf("failed to decode ledger file: %w", err)
	}
	return &l, nil
}
