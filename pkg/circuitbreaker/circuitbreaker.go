// Package circuitbreaker stops calling a failing dependency for a recovery
// period, then lets single probe calls through until it has recovered.
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

type State int

const (
	Closed State = iota
	Open
	HalfOpen
)

var stateNames = map[State]string{Closed: "closed", Open: "open", HalfOpen: "half_open"}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

var ErrCircuitOpen = errors.New("circuit breaker is open")

type Config struct {
	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold int
	RecoveryTimeout  time.Duration
	// SuccessThreshold probe successes close it again.
	SuccessThreshold int
	// OnStateChange runs after a transition, outside the lock.
	OnStateChange func(from, to State)
}

func DefaultConfig() Config {
	return Config{FailureThreshold: 5, RecoveryTimeout: time.Minute, SuccessThreshold: 3}
}

type Snapshot struct {
	State       State
	Failures    int
	Successes   int
	LastFailure time.Time
	OpenUntil   time.Time
}

type Breaker struct {
	config Config
	now    func() time.Time

	mu      sync.Mutex
	snap    Snapshot
	probing bool
}

// New fills zero thresholds from DefaultConfig.
func New(config Config) *Breaker {
	defaults := DefaultConfig()
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.RecoveryTimeout <= 0 {
		config.RecoveryTimeout = defaults.RecoveryTimeout
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = defaults.SuccessThreshold
	}
	return &Breaker{config: config, now: time.Now}
}

// Call runs fn unless the circuit is open. While half-open only one probe runs
// at a time; concurrent callers get ErrCircuitOpen. fn runs without the lock.
func (b *Breaker) Call(fn func() error) error {
	if err := b.admit(); err != nil {
		return err
	}

	err := fn()
	b.record(err)
	return err
}

func (b *Breaker) admit() error {
	b.mu.Lock()
	from := b.snap.State

	if from == Open && !b.now().Before(b.snap.OpenUntil) {
		b.snap.State = HalfOpen
		b.snap.Successes = 0
	}

	var err error
	switch {
	case b.snap.State == Open:
		err = ErrCircuitOpen
	case b.snap.State == HalfOpen && b.probing:
		err = ErrCircuitOpen
	case b.snap.State == HalfOpen:
		b.probing = true
	}
	to := b.snap.State
	b.mu.Unlock()

	b.notify(from, to)
	return err
}

func (b *Breaker) record(err error) {
	b.mu.Lock()
	from := b.snap.State
	b.probing = false

	if err != nil {
		b.snap.Failures++
		b.snap.LastFailure = b.now()
		if from == HalfOpen || b.snap.Failures >= b.config.FailureThreshold {
			b.snap.State = Open
			b.snap.OpenUntil = b.snap.LastFailure.Add(b.config.RecoveryTimeout)
		}
	} else {
		b.snap.Failures = 0
		if from == HalfOpen {
			b.snap.Successes++
			if b.snap.Successes >= b.config.SuccessThreshold {
				b.snap.State = Closed
				b.snap.Successes = 0
			}
		}
	}
	to := b.snap.State
	b.mu.Unlock()

	b.notify(from, to)
}

func (b *Breaker) notify(from, to State) {
	if from != to && b.config.OnStateChange != nil {
		b.config.OnStateChange(from, to)
	}
}

func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap.State
}

func (b *Breaker) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snap
}

func (b *Breaker) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snap = Snapshot{}
	b.probing = false
}
