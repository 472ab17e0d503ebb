package stream

// Sink receives the messages broadcast by its parent source.
type Sink struct {
	id      string
	channel chan Message

	source *Source
}

// ID returns the identifier assigned to this sink when it was created.
func (s *Sink) ID() string {
	return s.id
}

// Messages returns the read channel of messages broadcast by the source.
// The backing channel is buffered so a few messages can queue while the current one is being
// handled; messages that do not fit are dropped by the source, so consume promptly.
func (s *Sink) Messages() <-chan Message {
	return s.channel
}

// Close detaches this sink from its source and closes the message channel.
func (s *Sink) Close() {
	s.source.removeSink(s)
	close(s.channel)
}
