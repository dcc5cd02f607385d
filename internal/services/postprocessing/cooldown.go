package postprocessing

import (
	"sync"
	"time"

	"safety-worker-go/internal/models"
)

// CooldownStore tracks the last trigger time per (camera, alert type).
// All methods are safe for concurrent use.
type CooldownStore struct {
	mu       sync.Mutex
	window   time.Duration
	lastSent map[models.AlertCooldownKey]time.Time
	now      func() time.Time
}

func NewCooldownStore(window time.Duration) *CooldownStore {
	return &CooldownStore{
		window:   window,
		lastSent: make(map[models.AlertCooldownKey]time.Time),
		now:      time.Now,
	}
}

// WithClock replaces the store's time source; used by tests.
func (c *CooldownStore) WithClock(now func() time.Time) *CooldownStore {
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
	return c
}

func (c *CooldownStore) Window() time.Duration { return c.window }

// TryAcquire marks key as triggered and returns true when no trigger is
// recorded or the window has elapsed. Inside the window it returns false and
// leaves the recorded time untouched.
func (c *CooldownStore) TryAcquire(key models.AlertCooldownKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	if last, ok := c.lastSent[key]; ok && now.Sub(last) < c.window {
		return false
	}
	c.lastSent[key] = now
	return true
}

// Remaining returns how long key stays in cooldown, zero when idle.
func (c *CooldownStore) Remaining(key models.AlertCooldownKey) time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	last, ok := c.lastSent[key]
	if !ok {
		return 0
	}
	if left := c.window - c.now().Sub(last); left > 0 {
		return left
	}
	return 0
}

// Active counts keys still inside their window.
func (c *CooldownStore) Active() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for _, last := range c.lastSent {
		if now.Sub(last) < c.window {
			n++
		}
	}
	return n
}

// Reset clears every cooldown.
func (c *CooldownStore) Reset() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := len(c.lastSent)
	c.lastSent = make(map[models.AlertCooldownKey]time.Time)
	return n
}

// ResetCamera clears the cooldowns of a single camera.
func (c *CooldownStore) ResetCamera(cameraID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for key := range c.lastSent {
		if key.CameraID == cameraID {
			delete(c.lastSent, key)
			n++
		}
	}
	return n
}
