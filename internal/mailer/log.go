package mailer

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// LogSender writes messages to the log instead of sending them. It keeps the
// last message for inspection in development and tests.
type LogSender struct {
	log  *zap.SugaredLogger
	mu   sync.Mutex
	last *Message
}

func NewLogSender(log *zap.SugaredLogger) *LogSender {
	return &LogSender{log: log}
}

func (s *LogSender) Send(_ context.Context, msg Message) error {
	s.log.Infow("[Dev Mode] email not sent", "to", msg.To, "subject", msg.Subject, "html", msg.HTML)
	s.mu.Lock()
	s.last = &msg
	s.mu.Unlock()
	return nil
}

func (s *LogSender) Last() *Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}
