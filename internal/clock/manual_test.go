package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManual_AdvanceFiresDueTickers(t *testing.T) {
	start := time.Date(2026, 2, 20, 10, 0, 0, 0, time.UTC)
	c := NewManual(start)
	tk := c.NewTicker(time.Second)
	require.Equal(t, 1, c.ActiveTickers())

	c.Advance(500 * time.Millisecond)
	select {
	case <-tk.C():
		t.Fatal("ticked before period elapsed")
	default:
	}

	c.Advance(500 * time.Millisecond)
	select {
	case got := <-tk.C():
		assert.Equal(t, start.Add(time.Second), got)
	default:
		t.Fatal("expected a tick")
	}
	assert.Equal(t, start.Add(time.Second), c.Now())
}

func TestManual_DropsUnconsumedTicks(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	tk := c.NewTicker(time.Second)
	c.Advance(5 * time.Second)

	<-tk.C()
	select {
	case <-tk.C():
		t.Fatal("only one tick should be buffered")
	default:
	}
}

func TestManual_StopRemovesTicker(t *testing.T) {
	c := NewManual(time.Unix(0, 0))
	a := c.NewTicker(time.Second)
	_ = c.NewTicker(time.Second)
	a.Stop()
	assert.Equal(t, 1, c.ActiveTickers())
}
