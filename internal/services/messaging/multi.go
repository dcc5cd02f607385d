package messaging

import (
	"errors"

	"safety-worker-go/internal/models"
)

// MultiPublisher fans a message out to every publisher. A failing
// publisher does not stop delivery to the rest; errors are joined.
type MultiPublisher struct {
	publishers []models.MessagePublisher
}

func NewMultiPublisher(publishers ...models.MessagePublisher) *MultiPublisher {
	m := &MultiPublisher{}
	for _, p := range publishers {
		if p != nil {
			m.publishers = append(m.publishers, p)
		}
	}
	return m
}

func (m *MultiPublisher) Len() int { return len(m.publishers) }

func (m *MultiPublisher) Publish(subject string, data interface{}) error {
	var errs []error
	for _, p := range m.publishers {
		if err := p.Publish(subject, data); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
