// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package proptest

import (
	"math"
	"math/rand/v2"
)

// Tree is a generated value together with its lazily computed shrinks.
// Children are ordered most aggressive first.
type Tree[T any] struct {
	Value    T
	Children func() []Tree[T]
}

// Leaf is a tree that cannot shrink.
func Leaf[T any](v T) Tree[T] {
	return Tree[T]{Value: v}
}

func (t Tree[T]) shrinks() []Tree[T] {
	if t.Children == nil {
		return nil
	}
	return t.Children()
}

// Gen produces a shrink tree from a random source. size grows over the
// course of a run and bounds collection lengths.
type Gen[T any] func(r *rand.Rand, size int) Tree[T]

// Const always yields v.
func Const[T any](v T) Gen[T] {
	return func(*rand.Rand, int) Tree[T] { return Leaf(v) }
}

// Int yields integers in [lo, hi], favoring the bounds and the value
// nearest zero. Shrinks move toward that value.
func Int(lo, hi int) Gen[int] {
	if lo > hi {
		lo, hi = hi, lo
	}
	target := 0
	if target < lo {
		target = lo
	} else if target > hi {
		target = hi
	}

	return func(r *rand.Rand, _ int) Tree[int] {
		var v int
		switch r.IntN(8) {
		case 0:
			v = lo
		case 1:
			v = hi
		case 2:
			v = target
		default:
			v = lo + int(uintN(r, uint64(hi)-uint64(lo)))
		}
		return intTree(v, target)
	}
}

// uintN yields a value in [0, span]; span may be the full uint64 range.
func uintN(r *rand.Rand, span uint64) uint64 {
	if span == math.MaxUint64 {
		return r.Uint64()
	}
	return r.Uint64N(span + 1)
}

func intTree(v, target int) Tree[int] {
	return Tree[int]{
		Value: v,
		Children: func() []Tree[int] {
			var out []Tree[int]
			for d := v - target; d != 0; d /= 2 {
				out = append(out, intTree(v-d, target))
			}
			return out
		},
	}
}

// Bool shrinks to false.
func Bool() Gen[bool] {
	return func(r *rand.Rand, _ int) Tree[bool] {
		if r.IntN(2) == 0 {
			return Leaf(false)
		}
		return Tree[bool]{
			Value:    true,
			Children: func() []Tree[bool] { return []Tree[bool]{Leaf(false)} },
		}
	}
}

// Elements picks one of vs. Shrinks move toward the front of the list.
func Elements[T any](vs ...T) Gen[T] {
	if len(vs) == 0 {
		panic("proptest: Elements needs at least one value")
	}
	idx := Int(0, len(vs)-1)
	return Map(idx, func(i int) T { return vs[i] })
}

// OneOf picks a generator uniformly and shrinks within its output.
func OneOf[T any](gens ...Gen[T]) Gen[T] {
	if len(gens) == 0 {
		panic("proptest: OneOf needs at least one generator")
	}
	return func(r *rand.Rand, size int) Tree[T] {
		return gens[r.IntN(len(gens))](r, size)
	}
}

// Weighted pairs a generator with its relative frequency.
type Weighted[T any] struct {
	Weight int
	Gen    Gen[T]
}

// Frequency picks a generator with probability proportional to its weight.
func Frequency[T any](choices ...Weighted[T]) Gen[T] {
	total := 0
	for _, c := range choices {
		if c.Weight < 0 {
			panic("proptest: negative weight")
		}
		total += c.Weight
	}
	if total == 0 {
		panic("proptest: Frequency needs a positive total weight")
	}
	return func(r *rand.Rand, size int) Tree[T] {
		n := r.IntN(total)
		for _, c := range choices {
			if n < c.Weight {
				return c.Gen(r, size)
			}
			n -= c.Weight
		}
		return choices[len(choices)-1].Gen(r, size)
	}
}

// Map transforms generated values. Shrinking happens on the input side.
func Map[T, U any](g Gen[T], f func(T) U) Gen[U] {
	return func(r *rand.Rand, size int) Tree[U] {
		return mapTree(g(r, size), f)
	}
}

func mapTree[T, U any](t Tree[T], f func(T) U) Tree[U] {
	return Tree[U]{
		Value: f(t.Value),
		Children: func() []Tree[U] {
			kids := t.shrinks()
			out := make([]Tree[U], len(kids))
			for i, k := range kids {
				out[i] = mapTree(k, f)
			}
			return out
		},
	}
}

// Bind feeds a generated value into a generator-producing function. Only
// the outer value shrinks; the inner tree is regenerated from a fixed seed
// so shrinking stays deterministic.
func Bind[T, U any](g Gen[T], f func(T) Gen[U]) Gen[U] {
	return func(r *rand.Rand, size int) Tree[U] {
		outer := g(r, size)
		seed1, seed2 := r.Uint64(), r.Uint64()
		return bindTree(outer, f, seed1, seed2, size)
	}
}

func bindTree[T, U any](outer Tree[T], f func(T) Gen[U], s1, s2 uint64, size int) Tree[U] {
	inner := f(outer.Value)(rand.New(rand.NewPCG(s1, s2)), size)
	return Tree[U]{
		Value: inner.Value,
		Children: func() []Tree[U] {
			var out []Tree[U]
			for _, o := range outer.shrinks() {
				out = append(out, bindTree(o, f, s1, s2, size))
			}
			return append(out, inner.shrinks()...)
		},
	}
}

type Pair[A, B any] struct {
	First  A
	Second B
}

// Zip combines two generators. Shrinks try the first component, then the
// second.
func Zip[A, B any](ga Gen[A], gb Gen[B]) Gen[Pair[A, B]] {
	return func(r *rand.Rand, size int) Tree[Pair[A, B]] {
		return zipTree(ga(r, size), gb(r, size))
	}
}

func zipTree[A, B any](ta Tree[A], tb Tree[B]) Tree[Pair[A, B]] {
	return Tree[Pair[A, B]]{
		Value: Pair[A, B]{First: ta.Value, Second: tb.Value},
		Children: func() []Tree[Pair[A, B]] {
			var out []Tree[Pair[A, B]]
			for _, a := range ta.shrinks() {
				out = append(out, zipTree(a, tb))
			}
			for _, b := range tb.shrinks() {
				out = append(out, zipTree(ta, b))
			}
			return out
		},
	}
}

// SliceOf yields slices of length in [minLen, maxLen], additionally capped
// by the current size (but never below minLen). Shrinks drop chunks of
// elements, then shrink individual elements.
func SliceOf[T any](g Gen[T], minLen, maxLen int) Gen[[]T] {
	return func(r *rand.Rand, size int) Tree[[]T] {
		hi := min(maxLen, max(size, minLen))
		n := minLen
		if hi > minLen {
			n += r.IntN(hi - minLen + 1)
		}
		trees := make([]Tree[T], n)
		for i := range trees {
			trees[i] = g(r, size)
		}
		return sliceTree(trees, minLen)
	}
}

func sliceTree[T any](trees []Tree[T], minLen int) Tree[[]T] {
	vals := make([]T, len(trees))
	for i, t := range trees {
		vals[i] = t.Value
	}
	return Tree[[]T]{
		Value: vals,
		Children: func() []Tree[[]T] {
			var out []Tree[[]T]
			for chunk := len(trees) - minLen; chunk > 0; chunk /= 2 {
				for start := 0; start+chunk <= len(trees); start += chunk {
					rest := make([]Tree[T], 0, len(trees)-chunk)
					rest = append(rest, trees[:start]...)
					rest = append(rest, trees[start+chunk:]...)
					out = append(out, sliceTree(rest, minLen))
				}
			}
			for i, t := range trees {
				for _, k := range t.shrinks() {
					next := make([]Tree[T], len(trees))
					copy(next, trees)
					next[i] = k
					out = append(out, sliceTree(next, minLen))
				}
			}
			return out
		},
	}
}

// StringOf builds strings from runes drawn from alphabet.
func StringOf(alphabet Gen[rune], minLen, maxLen int) Gen[string] {
	return Map(SliceOf(alphabet, minLen, maxLen), func(rs []rune) string { return string(rs) })
}

// Rune picks a rune from chars, shrinking toward the first one.
func Rune(chars string) Gen[rune] {
	return Elements([]rune(chars)...)
}
