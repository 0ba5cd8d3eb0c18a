package combinator

import "math"

// ManyMN applies p repeatedly, at most n times, and succeeds if it matched
// at least m times. The match is atomic: if fewer than m repetitions
// succeed, nothing is consumed and the failure is reported at the start.
// Repetition also stops as soon as p succeeds without consuming input.
func ManyMN[T any](m, n int, p Parser[T]) Parser[[]T] {
	return func(in Input) (Input, []T, error) {
		var (
			out     []T
			lastErr error
		)
		cur := in
		for len(out) < n {
			next, v, err := p(cur)
			if err != nil {
				lastErr = err
				break
			}
			out = append(out, v)
			if next.pos == cur.pos {
				break
			}
			cur = next
		}
		if len(out) < m {
			return in, nil, &Failure{Kind: RepetitionCountNotMet, Pos: in.pos, Cause: lastErr}
		}
		return cur, out, nil
	}
}

// Many0 applies p until it fails and never fails itself.
func Many0[T any](p Parser[T]) Parser[[]T] {
	return ManyMN(0, math.MaxInt, p)
}

// RepeatMN is ManyMN for text parsers, yielding the concatenated matches.
func RepeatMN(m, n int, p Parser[string]) Parser[string] {
	return Recognize(ManyMN(m, n, p))
}

// Recognize runs p and yields the text it consumed instead of its output.
func Recognize[T any](p Parser[T]) Parser[string] {
	return func(in Input) (Input, string, error) {
		cur, _, err := p(in)
		if err != nil {
			return in, "", err
		}
		return cur, cur.Since(in), nil
	}
}

// Alt tries each parser in order and returns the first success. If all
// fail, the result is an AllAlternativesFailed failure wrapping the failure
// that got furthest into the input; ties go to the earliest alternative.
func Alt[T any](ps ...Parser[T]) Parser[T] {
	return func(in Input) (Input, T, error) {
		var (
			zero T
			best error
		)
		for _, p := range ps {
			cur, v, err := p(in)
			if err == nil {
				return cur, v, nil
			}
			if best == nil || posOf(err) > posOf(best) {
				best = err
			}
		}
		pos := in.pos
		if p := posOf(best); p >= 0 {
			pos = p
		}
		return in, zero, &Failure{Kind: AllAlternativesFailed, Pos: pos, Cause: best}
	}
}

// Sequence runs the parsers left to right and yields every output. Any
// failure aborts the sequence and is returned unchanged.
func Sequence(ps ...Parser[string]) Parser[[]string] {
	return func(in Input) (Input, []string, error) {
		out := make([]string, 0, len(ps))
		cur := in
		for _, p := range ps {
			next, v, err := p(cur)
			if err != nil {
				return in, nil, err
			}
			out = append(out, v)
			cur = next
		}
		return cur, out, nil
	}
}

// Preceded runs first then second and yields the output of second.
func Preceded[A, B any](first Parser[A], second Parser[B]) Parser[B] {
	return func(in Input) (Input, B, error) {
		var zero B
		cur, _, err := first(in)
		if err != nil {
			return in, zero, err
		}
		cur, v, err := second(cur)
		if err != nil {
			return in, zero, err
		}
		return cur, v, nil
	}
}

// Terminated runs first then second and yields the output of first.
func Terminated[A, B any](first Parser[A], second Parser[B]) Parser[A] {
	return func(in Input) (Input, A, error) {
		var zero A
		cur, v, err := first(in)
		if err != nil {
			return in, zero, err
		}
		cur, _, err = second(cur)
		if err != nil {
			return in, zero, err
		}
		return cur, v, nil
	}
}

// Delimited runs open, p and close and yields the output of p.
func Delimited[A, B, C any](open Parser[A], p Parser[B], closing Parser[C]) Parser[B] {
	return Preceded(open, Terminated(p, closing))
}

// Map transforms the output of a successful parse.
func Map[A, B any](p Parser[A], f func(A) B) Parser[B] {
	return func(in Input) (Input, B, error) {
		var zero B
		cur, v, err := p(in)
		if err != nil {
			return in, zero, err
		}
		return cur, f(v), nil
	}
}

// Peek runs p without consuming input.
func Peek[T any](p Parser[T]) Parser[T] {
	return func(in Input) (Input, T, error) {
		_, v, err := p(in)
		return in, v, err
	}
}

// Opt runs p and yields the zero value instead of failing.
func Opt[T any](p Parser[T]) Parser[T] {
	return func(in Input) (Input, T, error) {
		cur, v, err := p(in)
		if err != nil {
			var zero T
			return in, zero, nil
		}
		return cur, v, nil
	}
}
