package dict

import (
	"context"
	"sync"

	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

// Dialer opens sessions and keeps one circuit breaker per server address.
//
// A server that keeps failing the handshake trips its breaker, and later
// dials fail fast with gobreaker.ErrOpenState until the breaker timeout
// has passed. Sessions are not pooled: every Dial returns a new Client
// owned by the caller.
type Dialer struct {
	// Config is passed to every session.
	Config Config

	// NewCircuitBreaker creates a circuit breaker for a server.
	// Called once per server address on its first Dial.
	// If nil, no circuit breaker is used.
	NewCircuitBreaker func(serverAddr string) CircuitBreaker

	mu       sync.Mutex
	breakers map[string]CircuitBreaker
}

// NewDialer creates a dialer using the given config with default circuit breakers.
func NewDialer(config Config) *Dialer {
	return &Dialer{
		Config:            config,
		NewCircuitBreaker: NewCircuitBreakerConfig(1, 0, defaultBreakerTimeout),
	}
}

// Dial opens a session to addr through the address's circuit breaker.
func (d *Dialer) Dial(ctx context.Context, addr string) (*Client, error) {
	cb := d.breaker(addr)
	if cb == nil {
		return Dial(ctx, addr, d.Config)
	}

	return cb.Execute(func() (*Client, error) {
		return Dial(ctx, addr, d.Config)
	})
}

// BreakerState returns the state of the circuit breaker for addr.
// Servers never dialed, or a dialer without breakers, report StateClosed.
func (d *Dialer) BreakerState(addr string) gobreaker.State {
	d.mu.Lock()
	defer d.mu.Unlock()

	if cb, ok := d.breakers[addr]; ok {
		return cb.State()
	}
	return gobreaker.StateClosed
}

func (d *Dialer) breaker(addr string) CircuitBreaker {
	if d.NewCircuitBreaker == nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	if cb, ok := d.breakers[addr]; ok {
		return cb
	}

	if d.breakers == nil {
		d.breakers = make(map[string]CircuitBreaker)
	}
	cb := d.NewCircuitBreaker(addr)
	d.breakers[addr] = cb

	if d.Config.Logger != nil {
		d.Config.Logger.Debug("dict: circuit breaker created", zap.String("addr", addr))
	}
	return cb
}
