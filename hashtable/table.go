// Package hashtable interns monomials and assigns them stable, compact
// IDs. Three tables coexist during an F4 step (spec §3):
//
//   - the basis hash table (bht): stable across steps, owns monomials
//     occurring in the basis. Must not grow while the row engine holds
//     raw references into its storage — it grows only when new pivots are
//     folded back into the basis and during final interreduction, never
//     during reduction, by convention, not by a lock, the same
//     phase-separation discipline lvlath's core package documents per
//     method rather than enforcing with extra synchronization.
//   - the symbolic hash table (sht): reset every step, owns the current
//     matrix's monomials. Its per-entry State starts Absent, becomes Seen
//     once a monomial has been walked by symbolic preprocessing, and
//     becomes Pivot once a reducer row's lead has been assigned to it.
//   - the trace hash table (tht): owned by package trace, records
//     multipliers so a later prime can reproduce matrix shape.
package hashtable

import (
	"encoding/binary"

	"github.com/kori-dev/f4gb/monomial"
)

// ID is a stable index into a Table. The zero ID is a reserved sentinel
// slot (holding the identity monomial, so a row's "no multiplier" field
// can default to 0) and is never handed out by Insert; real entries,
// including a polynomial's constant term, start at ID 1.
type ID int32

// State records what is known about a symbolic hash table entry.
type State int8

const (
	// Absent means the monomial has not yet been visited by symbolic
	// preprocessing (sht's append-order walk treats Absent as "unseen").
	Absent State = 0
	// Seen means the monomial has been visited but has no reducer lead
	// assigned to this column yet.
	Seen State = 1
	// Pivot means the monomial is a known-pivot column: some reducer
	// row's lead is this monomial.
	Pivot State = 2
)

// Entry is one interned monomial plus its table-local bookkeeping.
type Entry struct {
	Mon monomial.Monomial
	// State is meaningful only for symbolic hash tables; basis/trace
	// tables leave it at Absent and ignore it.
	State State
	// Column holds the assigned column index after hash→column
	// conversion (matrix.ConvertColumns); -1 until then.
	Column int32
}

// Table interns monomials by exact exponent-vector equality (the Hash
// field is a fast-path filter only; Weights hashes can collide).
type Table struct {
	weights *monomial.Weights
	entries []Entry
	index   map[string]ID
}

// NewTable creates a table with entry 0 reserved as a sentinel: it holds
// the identity monomial so a multiplier of "no multiplier" can always be
// represented as ID 0 without a sentinel -1, but it is deliberately left
// out of the intern index — Insert of an all-zero exponent vector (a
// polynomial's constant term) creates a normal entry at ID >= 1. The
// reserved slot is therefore never referenced by any row and never
// becomes a matrix column; symbolic preprocessing and hash->column
// conversion both start their walks at ID 1.
func NewTable(w *monomial.Weights) *Table {
	t := &Table{
		weights: w,
		index:   make(map[string]ID),
	}
	t.entries = append(t.entries, Entry{Mon: w.Identity(), Column: -1})
	return t
}

func expKey(e monomial.Exp) string {
	b := make([]byte, 4*len(e))
	for i, v := range e {
		binary.LittleEndian.PutUint32(b[4*i:], uint32(v))
	}
	return string(b)
}

// Len returns the number of entries, including the reserved sentinel
// slot at index 0. Callers that walk a symbolic table in append order
// must re-read Len() each loop iteration: Insert during the walk grows
// the table, and the walk must see the new entries (spec §4.2).
func (t *Table) Len() int { return len(t.entries) }

// Weights returns the hash weights this table was built with.
func (t *Table) Weights() *monomial.Weights { return t.weights }

// Lookup returns the ID of an already-interned exponent vector.
func (t *Table) Lookup(e monomial.Exp) (ID, bool) {
	id, ok := t.index[expKey(e)]
	return id, ok
}

// Insert interns e if not already present (as an Absent entry with
// Column -1, so a symbolic-preprocessing walk in progress will visit it)
// and returns its ID either way.
func (t *Table) Insert(e monomial.Exp) ID {
	if id, ok := t.Lookup(e); ok {
		return id
	}
	mon := t.weights.New(e)
	id := ID(len(t.entries))
	t.entries = append(t.entries, Entry{Mon: mon, State: Absent, Column: -1})
	t.index[expKey(e)] = id
	return id
}

// InsertPivot interns e (if needed) and marks its entry Pivot.
func (t *Table) InsertPivot(e monomial.Exp) ID {
	id := t.Insert(e)
	t.entries[id].State = Pivot
	return id
}

// Entry returns the entry stored at id.
func (t *Table) Entry(id ID) Entry { return t.entries[id] }

// Mon returns the monomial stored at id.
func (t *Table) Mon(id ID) monomial.Monomial { return t.entries[id].Mon }

// SetState updates the State of an existing entry. Used to promote a
// Seen column to Pivot once symbolic preprocessing finds a reducer for it.
func (t *Table) SetState(id ID, s State) { t.entries[id].State = s }

// SetColumn records the column index assigned to id during hash→column
// conversion.
func (t *Table) SetColumn(id ID, col int32) { t.entries[id].Column = col }

// Each calls fn for every entry in append order, including newly
// appended entries discovered by fn itself (fn may call Insert on t).
func (t *Table) Each(fn func(id ID, e Entry)) {
	for i := 0; i < t.Len(); i++ {
		fn(ID(i), t.entries[i])
	}
}
