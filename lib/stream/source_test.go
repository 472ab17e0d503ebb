package stream

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

type testMessage struct {
	value string
}

func (tm *testMessage) String() string {
	return tm.value
}

func TestNewSink(t *testing.T) {
	s := NewSource(zaptest.NewLogger(t))

	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink := s.NewSink()
			assert.NotNil(t, sink)
			assert.NotEmpty(t, sink.ID())
		}()
	}

	wg.Wait()
	assert.Equal(t, 100, s.SinkCount())
}

func TestSinkRemove(t *testing.T) {
	s := NewSource(zaptest.NewLogger(t))

	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sink := s.NewSink()
			sink.Close()
		}()
	}

	wg.Wait()
	assert.Equal(t, 0, s.SinkCount())
}

func TestMessaging(t *testing.T) {
	s := NewSource(zaptest.NewLogger(t))
	msg := &testMessage{"stop 1 logged"}

	sinks := []*Sink{s.NewSink(), s.NewSink(), s.NewSink()}
	s.SendMessage(msg)

	for _, sink := range sinks {
		assert.Equal(t, msg, <-sink.Messages())
		sink.Close()
	}
	assert.Equal(t, 0, s.SinkCount())
}

func TestSendMessageDropsWhenFull(t *testing.T) {
	s := NewSource(zaptest.NewLogger(t))
	sink := s.NewSink()
	defer sink.Close()

	for i := 0; i < sinkBufferSize+5; i++ {
		s.SendMessage(&testMessage{"x"})
	}

	assert.Equal(t, sinkBufferSize, len(sink.Messages()))
}
