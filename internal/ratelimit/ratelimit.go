package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// Limiter implements a simple in-memory sliding window rate limiter
type Limiter struct {
	mu       sync.RWMutex
	counters map[string]*counter
	window   time.Duration
	max      int
}

type counter struct {
	count     int
	expiresAt time.Time
}

// NewLimiter creates a new rate limiter with the specified window and max requests
func NewLimiter(window time.Duration, max int) *Limiter {
	l := &Limiter{
		counters: make(map[string]*counter),
		window:   window,
		max:      max,
	}
	go l.cleanup()
	return l
}

// Allow checks if a request for the given key is allowed
func (l *Limiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		l.counters[key] = &counter{
			count:     1,
			expiresAt: now.Add(l.window),
		}
		return true
	}

	if c.count >= l.max {
		return false
	}

	c.count++
	return true
}

// GetRemaining returns the number of remaining requests for the given key
func (l *Limiter) GetRemaining(key string) int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := time.Now()
	c, exists := l.counters[key]

	if !exists || now.After(c.expiresAt) {
		return l.max
	}

	remaining := l.max - c.count
	if remaining < 0 {
		return 0
	}
	return remaining
}

// cleanup periodically removes expired counters
func (l *Limiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		l.mu.Lock()
		now := time.Now()
		for key, c := range l.counters {
			if now.After(c.expiresAt) {
				delete(l.counters, key)
			}
		}
		l.mu.Unlock()
	}
}

// MultiKeyLimiter manages rate limiters for the operations that are abusable
// from the storefront: checkout, OTP resends and review posting.
type MultiKeyLimiter struct {
	limiters map[string]*Limiter
	mu       sync.RWMutex
}

// NewMultiKeyLimiter creates a new multi-key limiter with default limits
func NewMultiKeyLimiter() *MultiKeyLimiter {
	return NewCustomMultiKeyLimiter(30, 10, 3, 20)
}

// NewCustomMultiKeyLimiter creates a multi-key limiter with custom limits
func NewCustomMultiKeyLimiter(ipOrderMax, emailOrderMax, otpMax, reviewMax int) *MultiKeyLimiter {
	return &MultiKeyLimiter{
		limiters: map[string]*Limiter{
			// orders per IP per hour
			"ip_order": NewLimiter(time.Hour, ipOrderMax),
			// orders per account per hour
			"email_order": NewLimiter(time.Hour, emailOrderMax),
			// OTP resends per order
			"order_otp": NewLimiter(10*time.Minute, otpMax),
			// review posts per account per hour
			"account_review": NewLimiter(time.Hour, reviewMax),
		},
	}
}

// CheckOrderCreation verifies if an order can be created from the given IP and email
func (m *MultiKeyLimiter) CheckOrderCreation(ip, email string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters["ip_order"].Allow(ip) {
		return fmt.Errorf("too many orders from this IP address, please try again later")
	}

	if email != "" && !m.limiters["email_order"].Allow(email) {
		return fmt.Errorf("too many orders from this account, please try again later")
	}

	return nil
}

// CheckOTPResend verifies if another delivery code may be sent for the order
func (m *MultiKeyLimiter) CheckOTPResend(orderUUID string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters["order_otp"].Allow(orderUUID) {
		return fmt.Errorf("too many delivery codes requested for this order, please wait")
	}

	return nil
}

// CheckReviewPost verifies if the account may post another review
func (m *MultiKeyLimiter) CheckReviewPost(accountId string) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.limiters["account_review"].Allow(accountId) {
		return fmt.Errorf("too many reviews posted, please slow down")
	}

	return nil
}
