// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package proptest is a small property-based testing harness with integrated
shrinking.

A Gen builds a Tree: the generated value plus a lazy list of smaller
candidates. Combinators (Map, Zip, SliceOf, OneOf, Frequency, Bind) build
the shrink trees of composite values out of their parts, so a failing
counterexample is minimized without hand-written shrinkers:

	gen := proptest.SliceOf(proptest.Int(0, 1000), 0, 50)
	proptest.Run(t, gen, func(xs []int) error {
		if len(xs) > 3 {
			return fmt.Errorf("too long: %d", len(xs))
		}
		return nil
	})

Integers shrink toward zero (or the nearest bound), slices shrink by
dropping chunks and then shrinking elements, and Elements shrinks toward
the first listed value.

Set PROPTEST_SEED to replay a failure and PROPTEST_RUNS to change the
number of generated cases.
*/
package proptest
