// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package proptest

import (
	"fmt"
	"math/rand/v2"
	"os"
	"strconv"
	"testing"
	"time"
)

const (
	DefaultRuns       = 200
	DefaultMaxSize    = 100
	DefaultMaxShrinks = 1000
)

type Config struct {
	Runs       int
	Seed       uint64
	MaxSize    int
	MaxShrinks int
}

// DefaultConfig reads PROPTEST_SEED and PROPTEST_RUNS so a failure can be
// replayed. Without a seed the current time is used.
func DefaultConfig() Config {
	cfg := Config{
		Runs:       DefaultRuns,
		Seed:       uint64(time.Now().UnixNano()),
		MaxSize:    DefaultMaxSize,
		MaxShrinks: DefaultMaxShrinks,
	}
	if v := os.Getenv("PROPTEST_SEED"); v != "" {
		if seed, err := strconv.ParseUint(v, 10, 64); err == nil {
			cfg.Seed = seed
		}
	}
	if v := os.Getenv("PROPTEST_RUNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Runs = n
		}
	}
	return cfg
}

func (c Config) withDefaults() Config {
	if c.Runs <= 0 {
		c.Runs = DefaultRuns
	}
	if c.MaxSize <= 0 {
		c.MaxSize = DefaultMaxSize
	}
	if c.MaxShrinks < 0 {
		c.MaxShrinks = 0
	} else if c.MaxShrinks == 0 {
		c.MaxShrinks = DefaultMaxShrinks
	}
	return c
}

// Failure describes a falsified property. Value is the smallest
// counterexample found; Original is the one first generated.
type Failure[T any] struct {
	Seed     uint64
	Run      int
	Original T
	Value    T
	Shrinks  int
	Err      error
}

func (f *Failure[T]) Error() string {
	return fmt.Sprintf("property failed on run %d (seed %d, %d shrinks): %v\ncounterexample: %#v",
		f.Run, f.Seed, f.Shrinks, f.Err, f.Value)
}

func (f *Failure[T]) Unwrap() error { return f.Err }

// PanicError wraps a panic raised by a property.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Check runs prop against cfg.Runs generated values and returns nil when
// every run passes. On failure the counterexample is shrunk greedily: the
// first child that still fails replaces the current value until no child
// fails or MaxShrinks property calls have been spent.
func Check[T any](cfg Config, gen Gen[T], prop func(T) error) *Failure[T] {
	cfg = cfg.withDefaults()
	r := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	for run := 0; run < cfg.Runs; run++ {
		size := 1 + run*cfg.MaxSize/cfg.Runs
		tree := gen(r, size)
		err := call(prop, tree.Value)
		if err == nil {
			continue
		}

		fail := &Failure[T]{Seed: cfg.Seed, Run: run, Original: tree.Value}
		cur, calls := shrink(tree, err, prop, cfg.MaxShrinks, fail)
		fail.Value = cur.Value
		fail.Shrinks = calls
		return fail
	}
	return nil
}

func shrink[T any](cur Tree[T], err error, prop func(T) error, budget int, fail *Failure[T]) (Tree[T], int) {
	calls := 0
	fail.Err = err
outer:
	for calls < budget {
		for _, child := range cur.shrinks() {
			if calls >= budget {
				break outer
			}
			calls++
			if e := call(prop, child.Value); e != nil {
				cur = child
				fail.Err = e
				continue outer
			}
		}
		break
	}
	return cur, calls
}

func call[T any](prop func(T) error, v T) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = &PanicError{Value: p}
		}
	}()
	return prop(v)
}

// Run checks prop with DefaultConfig and fails t with the shrunk
// counterexample and the seed needed to replay it.
func Run[T any](t testing.TB, gen Gen[T], prop func(T) error) {
	t.Helper()
	RunConfig(t, DefaultConfig(), gen, prop)
}

func RunConfig[T any](t testing.TB, cfg Config, gen Gen[T], prop func(T) error) {
	t.Helper()
	if fail := Check(cfg, gen, prop); fail != nil {
		t.Fatalf("%v\nreplay with PROPTEST_SEED=%d", fail, fail.Seed)
	}
}
