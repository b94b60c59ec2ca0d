package exception

// Log is an append-only collector of exceptions, scoped to a single run.
// It is created fresh per run and never shared across runs; stages that
// are pure return their exceptions as values and the caller appends them
// here, so the collector is the only place entries accumulate.
type Log struct {
	entries []Exception
}

func NewLog() *Log {
	return &Log{}
}

func (l *Log) Append(entries ...Exception) {
	l.entries = append(l.entries, entries...)
}

func (l *Log) Len() int {
	return len(l.entries)
}

// Entries returns a copy; the log itself stays append-only.
func (l *Log) Entries() []Exception {
	out := make([]Exception, len(l.entries))
	copy(out, l.entries)
	return out
}

// CountByKind tallies entries per kind, for metrics and run summaries.
func (l *Log) CountByKind() map[Kind]int {
	counts := make(map[Kind]int)
	for _, e := range l.entries {
		counts[e.Kind]++
	}
	return counts
}
