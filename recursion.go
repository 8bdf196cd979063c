package linkml

// RecursionTracker records (class, identifier) pairs currently under
// validation, breaking cycles in inlined-reference graphs. A named
// visited-set rather than a bare depth counter, so diagnostics can
// report which identifier closed the cycle.
type RecursionTracker struct {
	visited map[string]bool
	depth   int
	limit   int
}

func newRecursionTracker(limit int) *RecursionTracker {
	return &RecursionTracker{visited: map[string]bool{}, limit: limit}
}

// enter records class/identifier as in-progress. err wraps
// ErrRecursionLimit (and leave is nil) when the pair is already on the
// stack (a cycle) or limit pairs are already entered; the caller must
// call leave for every successful enter.
func (t *RecursionTracker) enter(class, identifier string) (leave func(), err error) {
	key := class + "\x00" + identifier
	if t.visited[key] {
		return nil, wrapf(ErrRecursionLimit, "cycle at %s/%s", class, identifier)
	}
	if t.depth >= t.limit {
		return nil, wrapf(ErrRecursionLimit, "exceeded depth %d at %s/%s", t.limit, class, identifier)
	}
	t.visited[key] = true
	t.depth++
	return func() {
		delete(t.visited, key)
		t.depth--
	}, nil
}
