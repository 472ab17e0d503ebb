package stream

import (
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sinkBufferSize = 16

// Message is anything that can be broadcast to sinks.
type Message interface {
	String() string
}

// Source represents a message source that will be broadcast to its sinks.
type Source struct {
	logger *zap.Logger

	sinks     map[string]*Sink
	sinksLock sync.Mutex
}

// NewSource creates a new message source.
func NewSource(logger *zap.Logger) *Source {
	return &Source{
		logger: logger,
		sinks:  map[string]*Sink{},
	}
}

// NewSink creates a message sink for this source.
func (s *Source) NewSink() *Sink {
	sink := &Sink{
		id:      uuid.New().String(),
		channel: make(chan Message, sinkBufferSize),
		source:  s,
	}

	s.sinksLock.Lock()
	s.sinks[sink.id] = sink
	s.sinksLock.Unlock()

	s.logger.Debug("added sink",
		zap.String("sink_id", sink.id))
	return sink
}

// SendMessage sends a message to all created sinks without blocking.
func (s *Source) SendMessage(msg Message) {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	for _, sink := range s.sinks {
		select {
		case sink.channel <- msg:
		default:
			s.logger.Debug("sink blocked, dropping message",
				zap.String("sink_id", sink.id),
				zap.String("message", msg.String()),
			)
		}
	}
}

// SinkCount returns the number of currently attached sinks.
func (s *Source) SinkCount() int {
	s.sinksLock.Lock()
	defer s.sinksLock.Unlock()

	return len(s.sinks)
}

func (s *Source) removeSink(sink *Sink) {
	s.sinksLock.Lock()
	delete(s.sinks, sink.id)
	s.sinksLock.Unlock()
}
