package sheet

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// TableNames holds the source sheet name for each logical table.
type TableNames struct {
	Balances    string
	Deposits    string
	Withdrawals string
	Settlements string
	Rates       string
}

// TableSet is one fetched generation of all five source tables, already
// row-normalized. It is immutable once built; every reconciliation run reads
// from a single TableSet.
type TableSet struct {
	Balances    []Row     `json:"balances"`
	Deposits    []Row     `json:"deposits"`
	Withdrawals []Row     `json:"withdrawals"`
	Settlements []Row     `json:"settlements"`
	Rates       []Row     `json:"rates"`
	FetchedAt   time.Time `json:"fetched_at"`
}

// Hash returns a content hash over the five tables, excluding the fetch
// timestamp, for memoizing derived views. JSON map keys marshal sorted, so
// the encoding is deterministic for equal content.
func (ts *TableSet) Hash() string {
	payload, _ := json.Marshal(struct {
		B, D, W, S, R []Row
	}{ts.Balances, ts.Deposits, ts.Withdrawals, ts.Settlements, ts.Rates})
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
