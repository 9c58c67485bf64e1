package vm

// Run is one maximal span of equal values in a RunLength sequence.
type Run[T comparable] struct {
	Value  T
	Length int
}

// RunLength stores a sequence of frequently-repeating values as (value,
// run length) pairs. The chunk line table is the one user today, but the
// encoding is generic over any comparable value. Push is amortized O(1);
// Get scans cumulative run lengths, O(number of runs), so it stays out of
// the instruction dispatch path and is used for diagnostics only.
//
// Invariants: every run length is positive, and adjacent runs never hold
// equal values, so the encoding is always maximally merged. The zero value
// is an empty sequence ready to use.
type RunLength[T comparable] struct {
	runs  []Run[T]
	total int
}

// Push appends v to the sequence, extending the last run when it already
// holds v and starting a new run of length 1 otherwise.
func (r *RunLength[T]) Push(v T) {
	r.total++
	if n := len(r.runs); n > 0 && r.runs[n-1].Value == v {
		r.runs[n-1].Length++
		return
	}
	r.runs = append(r.runs, Run[T]{Value: v, Length: 1})
}

// Get returns the value at position i, where positions count individual
// pushes, not runs. i must be in [0, Len()).
func (r *RunLength[T]) Get(i int) T {
	if i >= 0 {
		covered := 0
		for _, run := range r.runs {
			covered += run.Length
			if i < covered {
				return run.Value
			}
		}
	}
	panic("runlength: index out of range")
}

// Len reports how many values have been pushed.
func (r *RunLength[T]) Len() int {
	return r.total
}

// Runs reports how many runs the sequence currently occupies.
func (r *RunLength[T]) Runs() int {
	return len(r.runs)
}
