package infra

import (
	"errors"
	"sync"
	"time"
)

// ── Circuit Breaker ───────────────────────────────────────────────────────────
// Guards the SMTP relay used for low stock alerts. After FailureThreshold
// consecutive send failures the breaker opens and alert jobs fail fast
// instead of each waiting on a dead relay. The worker parks rejected jobs in
// its retry set without spending one of their attempts.
//
//   closed → open      after FailureThreshold consecutive failures
//   open → half-open   once OpenTimeout has elapsed
//   half-open → closed after SuccessThreshold consecutive successes
//   half-open → open   on any failure
//
// While half-open only one trial call runs at a time; concurrent callers
// get ErrCircuitOpen until it finishes.

type CBState int

const (
	CBClosed CBState = iota
	CBOpen
	CBHalfOpen
)

func (s CBState) String() string {
	switch s {
	case CBClosed:
		return "closed"
	case CBOpen:
		return "open"
	case CBHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrCircuitOpen is returned by Execute while the breaker is open or a
// half-open trial is in flight.
var ErrCircuitOpen = errors.New("circuit breaker is open")

type CircuitBreakerConfig struct {
	FailureThreshold int
	SuccessThreshold int
	OpenTimeout      time.Duration
}

// DefaultCBConfig suits an SMTP relay: trip after 3 failures, retry the relay after 2 minutes.
func DefaultCBConfig() CircuitBreakerConfig {
	return CircuitBreakerConfig{
		FailureThreshold: 3,
		SuccessThreshold: 1,
		OpenTimeout:      2 * time.Minute,
	}
}

type CircuitBreaker struct {
	cfg CircuitBreakerConfig
	now func() time.Time

	mu        sync.Mutex
	state     CBState
	failures  int
	successes int
	inTrial   bool
	openedAt  time.Time
}

func NewCircuitBreaker(cfg CircuitBreakerConfig) *CircuitBreaker {
	def := DefaultCBConfig()
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.SuccessThreshold <= 0 {
		cfg.SuccessThreshold = def.SuccessThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	return &CircuitBreaker{cfg: cfg, now: time.Now}
}

// State returns the current state, moving open to half-open when the
// timeout has elapsed.
func (cb *CircuitBreaker) State() CBState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.currentLocked()
}

func (cb *CircuitBreaker) currentLocked() CBState {
	if cb.state == CBOpen && cb.now().Sub(cb.openedAt) >= cb.cfg.OpenTimeout {
		cb.state = CBHalfOpen
		cb.successes = 0
	}
	return cb.state
}

// Execute runs fn unless the breaker is open. In half-open state fn runs
// only if no other trial is in flight.
func (cb *CircuitBreaker) Execute(fn func() error) error {
	cb.mu.Lock()
	state := cb.currentLocked()
	if state == CBOpen || (state == CBHalfOpen && cb.inTrial) {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	trial := state == CBHalfOpen
	if trial {
		cb.inTrial = true
	}
	cb.mu.Unlock()

	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if trial {
		cb.inTrial = false
	}
	if err != nil {
		cb.recordFailureLocked()
		return err
	}
	cb.recordSuccessLocked()
	return nil
}

func (cb *CircuitBreaker) recordFailureLocked() {
	switch cb.currentLocked() {
	case CBHalfOpen:
		cb.trip()
	case CBClosed:
		cb.failures++
		if cb.failures >= cb.cfg.FailureThreshold {
			cb.trip()
		}
	}
}

func (cb *CircuitBreaker) recordSuccessLocked() {
	switch cb.currentLocked() {
	case CBHalfOpen:
		cb.successes++
		if cb.successes >= cb.cfg.SuccessThreshold {
			cb.state = CBClosed
			cb.failures = 0
		}
	case CBClosed:
		cb.failures = 0
	}
}

func (cb *CircuitBreaker) trip() {
	cb.state = CBOpen
	cb.openedAt = cb.now()
	cb.failures = 0
	cb.successes = 0
}
