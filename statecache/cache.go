package statecache

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/katalvlaran/qpest/circuit"
)

// Evaluator is the external exact-state collaborator. It consumes a fully
// bound circuit (no free parameters remaining) and returns its exact state;
// it is treated as a pure, deterministic function of that circuit.
type Evaluator interface {
	Evaluate(c *circuit.Circuit) (Statevector, error)
}

// Cache memoizes statevector construction per (circuit identity, parameter
// values). Safe for concurrent use; see the package documentation for the
// locking discipline.
type Cache struct {
	mu       sync.Mutex
	eval     Evaluator
	circuits []*circuit.Circuit
	entries  map[string]Statevector
	order    []string // insertion order, drives FIFO eviction
	capacity int      // 0 means unbounded
}

// Option configures a Cache.
type Option func(*Cache)

// WithCapacity bounds the cache to n entries with FIFO eviction.
// n <= 0 leaves the cache unbounded (the default).
func WithCapacity(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.capacity = n
		}
	}
}

// New builds a cache over the given circuit list and evaluator.
// The circuit slice is copied; the circuits themselves are not.
func New(eval Evaluator, circuits []*circuit.Circuit, opts ...Option) (*Cache, error) {
	if eval == nil {
		return nil, ErrNilEvaluator
	}
	c := &Cache{
		eval:     eval,
		circuits: append([]*circuit.Circuit(nil), circuits...),
		entries:  make(map[string]Statevector),
	}
	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// BuildStatevector binds parameterValues positionally onto the circuit at
// circuitIndex and evaluates it, memoizing the result. The value count must
// exactly match the circuit's free-parameter count (circuit.ErrParameterCount
// otherwise). Identical keys return the stored state without recomputation;
// failed evaluations are never stored.
func (c *Cache) BuildStatevector(circuitIndex int, parameterValues []float64) (Statevector, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if circuitIndex < 0 || circuitIndex >= len(c.circuits) {
		return Statevector{}, fmt.Errorf("%w: index %d of %d", ErrCircuitIndex, circuitIndex, len(c.circuits))
	}
	circ := c.circuits[circuitIndex]
	key := cacheKey(circ, parameterValues)

	if sv, ok := c.entries[key]; ok {
		return sv, nil
	}

	// Binding validates the parameter count before any evaluation happens.
	bound, err := circ.BindParameters(parameterValues)
	if err != nil {
		return Statevector{}, err
	}

	sv, err := c.eval.Evaluate(bound)
	if err != nil {
		return Statevector{}, fmt.Errorf("statecache: evaluation failed: %w", err)
	}

	c.store(key, sv)

	return sv, nil
}

// store inserts under the single-writer lock, evicting FIFO when bounded.
func (c *Cache) store(key string, sv Statevector) {
	if c.capacity > 0 && len(c.entries) >= c.capacity {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
	c.entries[key] = sv
	c.order = append(c.order, key)
}

// Len returns the number of memoized entries.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Purge drops every memoized entry.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]Statevector)
	c.order = nil
}

// Register appends a circuit to the served list and returns its index.
func (c *Cache) Register(circ *circuit.Circuit) (int, error) {
	if circ == nil {
		return 0, circuit.ErrNilCircuit
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.circuits = append(c.circuits, circ)

	return len(c.circuits) - 1, nil
}

// NumCircuits returns the number of circuits the cache serves.
func (c *Cache) NumCircuits() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.circuits)
}

// cacheKey combines the circuit identity with the exact bit patterns of the
// parameter values, in order. Bitwise equality is the key's equality
// contract: the same circuit with the same ordered values always lands on
// the same entry.
func cacheKey(circ *circuit.Circuit, values []float64) string {
	var sb strings.Builder
	sb.WriteString(circ.ID().String())
	for _, v := range values {
		fmt.Fprintf(&sb, ";%016x", math.Float64bits(v))
	}

	return sb.String()
}
