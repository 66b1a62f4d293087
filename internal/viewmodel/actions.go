package viewmodel

// load runs fn as a replacing operation on s
func load[T any](s *Store[T], fn func() (T, error)) (T, error) {
	t := s.begin(true)
	v, err := fn()
	s.finish(t, err, replaceWith(v))
	return v, err
}

// mutate runs fn as a merging operation on s; apply folds the result into the current data
func mutate[T, R any](s *Store[T], fn func() (R, error), apply func(T, R) T) (R, error) {
	t := s.begin(false)
	r, err := fn()
	s.finish(t, err, func(cur T) T { return apply(cur, r) })
	return r, err
}

func prepend[E any](items []E, v E) []E {
	out := make([]E, 0, len(items)+1)
	out = append(out, v)
	return append(out, items...)
}

func appendCopy[E any](items []E, v E) []E {
	out := make([]E, 0, len(items)+1)
	out = append(out, items...)
	return append(out, v)
}

// replaceWhere returns a copy of items with every element matching match swapped for v
func replaceWhere[E any](items []E, v E, match func(E) bool) []E {
	out := make([]E, len(items))
	for i := range items {
		if match(items[i]) {
			out[i] = v
			continue
		}
		out[i] = items[i]
	}
	return out
}

// removeWhere returns a copy of items without the elements matching match
func removeWhere[E any](items []E, match func(E) bool) []E {
	out := make([]E, 0, len(items))
	for _, it := range items {
		if !match(it) {
			out = append(out, it)
		}
	}
	return out
}
