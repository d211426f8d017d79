package dirsnap

import "iter"

// Entries is the read-only view over a snapshot's ordered entry list.
//
// Indices are stable for the lifetime of the snapshot: removing an entry
// leaves a gap rather than renumbering the entries after it.
type Entries interface {
	// Count returns the number of live entries.
	Count() int

	// All yields index/value pairs in traversal order. Each call starts over.
	All() iter.Seq2[int, string]

	// Files returns a copy of the live entry values in traversal order.
	Files() []string

	// Get returns the entry stored at index.
	Get(index int) (string, bool)

	// Index returns the index of the first live entry equal to name.
	Index(name string) (int, bool)

	// Lookup resolves name to its index and returns the stored value.
	Lookup(name string) (string, bool)

	// Has reports whether a live entry exists at index.
	Has(index int) bool

	// HasName reports whether a live entry equals name.
	HasName(name string) bool
}
