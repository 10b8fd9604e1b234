package bus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBroker_DeliversInOrderUntilUnsubscribed(t *testing.T) {
	b := New[int]()
	var got []string
	unsubA := b.Subscribe(func(v int) { got = append(got, "a") })
	b.Subscribe(func(v int) { got = append(got, "b") })

	b.Publish(1)
	assert.Equal(t, []string{"a", "b"}, got)

	unsubA()
	unsubA()
	got = nil
	b.Publish(2)
	assert.Equal(t, []string{"b"}, got)
	assert.Len(t, b.order, 1)
	assert.Len(t, b.subs, 1)
}

func TestBroker_PanickingSubscriberIsIsolated(t *testing.T) {
	b := New[string]()
	var errs []error
	b.OnError = func(err error) { errs = append(errs, err) }

	var delivered []string
	b.Subscribe(func(string) { panic("boom") })
	b.Subscribe(func(v string) { delivered = append(delivered, v) })

	require.NotPanics(t, func() { b.Publish("x") })
	assert.Equal(t, []string{"x"}, delivered)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "boom")
}

func TestBroker_BufferedDropsWhenFull(t *testing.T) {
	b := New[int]()
	drops := 0
	ch, cancel := b.SubscribeBuffered(2, func() { drops++ })
	defer cancel()

	for i := 0; i < 5; i++ {
		b.Publish(i)
	}
	assert.Equal(t, 3, drops)
	assert.Equal(t, 0, <-ch)
	assert.Equal(t, 1, <-ch)
}

func TestBroker_UnsubscribeDuringPublishIsSafe(t *testing.T) {
	b := New[int]()
	var unsub func()
	calls := 0
	unsub = b.Subscribe(func(int) {
		calls++
		unsub()
	})
	b.Publish(1)
	b.Publish(2)
	assert.Equal(t, 1, calls)
}
