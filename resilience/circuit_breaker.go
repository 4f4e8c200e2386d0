package resilience

import (
	"errors"
	"sync"
	"time"

	"github.com/kbukum/inspectkit/apierror"
)

// State is the position of a circuit breaker.
type State int

const (
	// StateClosed lets every call through.
	StateClosed State = iota
	// StateOpen rejects calls with ErrCircuitOpen.
	StateOpen
	// StateHalfOpen lets a limited number of trial calls through.
	StateHalfOpen
)

var stateNames = [...]string{
	StateClosed:   "closed",
	StateOpen:     "open",
	StateHalfOpen: "half-open",
}

// String returns the state name.
func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// ErrCircuitOpen is returned without calling the operation while the
// circuit is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// CircuitBreakerConfig configures a circuit breaker.
type CircuitBreakerConfig struct {
	// Name identifies the breaker in state change callbacks and logs.
	Name string `mapstructure:"name"`
	// MaxFailures is the number of consecutive outages that opens the circuit.
	MaxFailures int `mapstructure:"max_failures" validate:"min=0"`
	// Timeout is how long the circuit stays open before trial calls.
	Timeout time.Duration `mapstructure:"timeout"`
	// HalfOpenMaxCalls is the number of trial calls allowed while half-open.
	// The circuit closes once that many trials succeed.
	HalfOpenMaxCalls int `mapstructure:"half_open_max_calls" validate:"min=0"`
	// IsFailure decides whether an error counts against the circuit.
	// Defaults to IsOutage.
	IsFailure func(error) bool `mapstructure:"-"`
	// OnStateChange is called with the breaker lock held; it must not call
	// back into the breaker.
	OnStateChange func(name string, from, to State) `mapstructure:"-"`
}

// IsOutage reports whether err means the remote side is unhealthy: a
// network failure or a server-family error. Client errors such as
// validation or auth failures leave the circuit alone.
func IsOutage(err error) bool {
	if err == nil {
		return false
	}
	p := apierror.Classify(err)
	return p.IsNetworkError() || p.IsServerError()
}

// DefaultCircuitBreakerConfig returns the defaults used by the HTTP client.
func DefaultCircuitBreakerConfig(name string) CircuitBreakerConfig {
	return CircuitBreakerConfig{
		Name:             name,
		MaxFailures:      5,
		Timeout:          30 * time.Second,
		HalfOpenMaxCalls: 1,
	}
}

// CircuitBreaker fails fast while the remote API is having an outage.
// Only errors accepted by IsFailure are counted; a 404 or a rejected form
// says nothing about the health of the server.
type CircuitBreaker struct {
	config CircuitBreakerConfig
	now    func() time.Time

	mu       sync.Mutex
	state    State
	gen      uint64 // bumped on every transition; stale results are dropped
	failures int    // consecutive outages
	openedAt time.Time
	trials   int // trial calls started while half-open
	passed   int // trial calls that succeeded
}

// NewCircuitBreaker creates a closed circuit breaker. Zero config values
// fall back to DefaultCircuitBreakerConfig.
func NewCircuitBreaker(config CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCircuitBreakerConfig(config.Name)
	if config.MaxFailures <= 0 {
		config.MaxFailures = def.MaxFailures
	}
	if config.Timeout <= 0 {
		config.Timeout = def.Timeout
	}
	if config.HalfOpenMaxCalls <= 0 {
		config.HalfOpenMaxCalls = def.HalfOpenMaxCalls
	}
	if config.IsFailure == nil {
		config.IsFailure = IsOutage
	}
	return &CircuitBreaker{config: config, now: time.Now}
}

// Execute runs fn unless the circuit is open, in which case it returns
// ErrCircuitOpen. The error from fn is returned unchanged.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	gen, ok := cb.acquire()
	if !ok {
		return ErrCircuitOpen
	}
	err := fn()
	cb.release(gen, err != nil && cb.config.IsFailure(err))
	return err
}

// State returns the current state.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.refresh()
}

// Failures returns the current number of consecutive outages.
func (cb *CircuitBreaker) Failures() int {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.failures
}

// Reset closes the circuit and clears all counters.
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.transition(StateClosed)
	cb.failures = 0
}

// acquire admits a call and returns the generation it belongs to.
func (cb *CircuitBreaker) acquire() (uint64, bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.refresh() {
	case StateOpen:
		return 0, false
	case StateHalfOpen:
		if cb.trials >= cb.config.HalfOpenMaxCalls {
			return 0, false
		}
		cb.trials++
	}
	return cb.gen, true
}

// release records the outcome of a call admitted by acquire.
func (cb *CircuitBreaker) release(gen uint64, failed bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	state := cb.refresh()
	if gen != cb.gen {
		return
	}

	if failed {
		cb.failures++
		switch {
		case state == StateHalfOpen:
			cb.trip()
		case state == StateClosed && cb.failures >= cb.config.MaxFailures:
			cb.trip()
		}
		return
	}

	switch state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.passed++
		if cb.passed >= cb.config.HalfOpenMaxCalls {
			cb.transition(StateClosed)
		}
	}
}

func (cb *CircuitBreaker) trip() {
	cb.openedAt = cb.now()
	cb.transition(StateOpen)
}

// refresh moves an open circuit to half-open once Timeout has elapsed.
func (cb *CircuitBreaker) refresh() State {
	if cb.state == StateOpen && cb.now().Sub(cb.openedAt) >= cb.config.Timeout {
		cb.transition(StateHalfOpen)
	}
	return cb.state
}

func (cb *CircuitBreaker) transition(to State) {
	if cb.state == to {
		return
	}
	from := cb.state
	cb.state = to
	cb.gen++
	cb.trials, cb.passed = 0, 0
	if to == StateClosed {
		cb.failures = 0
	}
	if cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, from, to)
	}
}
