package messaging

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"safety-worker-go/internal/config"
)

type recorder struct {
	got []string
	err error
}

func (r *recorder) Publish(subject string, _ interface{}) error {
	r.got = append(r.got, subject)
	return r.err
}

func TestMultiPublisherDeliversToAll(t *testing.T) {
	a, b := &recorder{}, &recorder{}
	multi := NewMultiPublisher(a, nil, b)
	assert.Equal(t, 2, multi.Len())

	require.NoError(t, multi.Publish("alerts.safety", map[string]string{"k": "v"}))
	assert.Equal(t, []string{"alerts.safety"}, a.got)
	assert.Equal(t, []string{"alerts.safety"}, b.got)
}

func TestMultiPublisherJoinsErrors(t *testing.T) {
	errA := errors.New("nats down")
	a, b := &recorder{err: errA}, &recorder{}

	err := NewMultiPublisher(a, b).Publish("alerts.safety", nil)
	assert.ErrorIs(t, err, errA)
	assert.Len(t, b.got, 1, "later publishers still receive the message")
}

func TestNewServiceUnreachable(t *testing.T) {
	cfg := &config.Config{
		WorkerID:           "test",
		NatsURL:            "nats://127.0.0.1:1",
		NatsConnectTimeout: 200 * time.Millisecond,
		NatsReconnectWait:  10 * time.Millisecond,
		NatsMaxReconnects:  0,
		NatsDrainTimeout:   time.Second,
	}
	_, err := NewService(cfg)
	assert.Error(t, err)
}
