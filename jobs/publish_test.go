package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"deepresearch/types"
)

type recordingPublisher struct {
	events []string
	err    error
}

func (r *recordingPublisher) Publish(event string, job types.Job) error {
	r.events = append(r.events, event)
	return r.err
}

func TestMultiPublisherFansOut(t *testing.T) {
	a := &recordingPublisher{}
	b := &recordingPublisher{err: errors.New("broker down")}
	c := &recordingPublisher{}

	mp := MultiPublisher{a, nil, b, c}
	err := mp.Publish("research.completed", types.Job{ID: "j"})

	assert.EqualError(t, err, "broker down")
	// Every publisher still sees the event despite the failure.
	assert.Equal(t, []string{"research.completed"}, a.events)
	assert.Equal(t, []string{"research.completed"}, b.events)
	assert.Equal(t, []string{"research.completed"}, c.events)
}
