// Package ledger tracks record novelty per collection so repeated crawl
// passes over the same rendered content never append duplicates.
package ledger

// Ledger is a set-backed membership index keyed by collection name and a
// record's natural identity (product title, review/testimonial text).
// It is used from a single strategy loop at a time; it is not safe for
// concurrent writers.
type Ledger struct {
	seen map[string]map[string]struct{}
}

// New creates an empty ledger.
func New() *Ledger {
	return &Ledger{
		seen: make(map[string]map[string]struct{}),
	}
}

// IsNovel reports whether key has not been registered under collection.
func (l *Ledger) IsNovel(collection, key string) bool {
	keys, ok := l.seen[collection]
	if !ok {
		return true
	}

	_, registered := keys[key]

	return !registered
}

// Register records key under collection. Registering the same key twice
// is harmless.
func (l *Ledger) Register(collection, key string) {
	keys, ok := l.seen[collection]
	if !ok {
		keys = make(map[string]struct{})
		l.seen[collection] = keys
	}

	keys[key] = struct{}{}
}

// Size returns the number of distinct keys registered under collection.
func (l *Ledger) Size(collection string) int {
	return len(l.seen[collection])
}
