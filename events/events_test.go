package events

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// TestEventPublishingAndSubscribing creates EventEmitter objects, subscribes EventHandler callbacks to them, and
// ensures that the events are received as intended.
func TestEventPublishingAndSubscribing(t *testing.T) {
	type testEventA struct{ value int }
	type testEventB struct{}

	var emitterA1, emitterA2 EventEmitter[testEventA]
	var emitterB EventEmitter[testEventB]

	var a1Sum, a2Count, bCount, globalACount int
	emitterA1.Subscribe(func(event testEventA) error {
		a1Sum += event.value
		return nil
	})
	emitterA2.Subscribe(func(event testEventA) error {
		a2Count++
		return nil
	})
	emitterB.Subscribe(func(event testEventB) error {
		bCount++
		return nil
	})
	SubscribeAny(func(event testEventA) error {
		globalACount++
		return nil
	})

	for i := 1; i <= 3; i++ {
		assert.NoError(t, emitterA1.Publish(testEventA{value: i}))
	}
	for i := 0; i < 5; i++ {
		assert.NoError(t, emitterA2.Publish(testEventA{}))
	}
	assert.NoError(t, emitterB.Publish(testEventB{}))

	assert.Equal(t, 6, a1Sum)
	assert.Equal(t, 5, a2Count)
	assert.Equal(t, 1, bCount)
	assert.Equal(t, 8, globalACount)
}

// TestPublishStopsOnError verifies a failing handler stops the publication and its error is returned.
func TestPublishStopsOnError(t *testing.T) {
	t.Parallel()

	type testEvent struct{}
	var emitter EventEmitter[testEvent]

	calls := 0
	emitter.Subscribe(func(testEvent) error {
		calls++
		return errors.New("stop")
	})
	emitter.Subscribe(func(testEvent) error {
		calls++
		return nil
	})

	assert.EqualError(t, emitter.Publish(testEvent{}), "stop")
	assert.Equal(t, 1, calls)
}
