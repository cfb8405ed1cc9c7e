package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/logging"
	"github.com/21R01A7263/docGPT/pkg/session"
	"github.com/21R01A7263/docGPT/platform/events"
)

// SessionService owns the single application state. Extraction and answering run
// in the background under a context detached from the caller, so a closed request
// never cancels them. Every transition is published as a snapshot event.
type SessionService struct {
	mu    sync.Mutex
	state *session.State

	extractor DocumentTextProvider
	answerer  AnswerProvider
	publisher events.Publisher

	outbox   []models.SessionEvent
	flushing bool

	wg sync.WaitGroup
}

const publishTimeout = 5 * time.Second

// NewSessionService wires the providers. publisher may be nil.
func NewSessionService(extractor DocumentTextProvider, answerer AnswerProvider, publisher events.Publisher) *SessionService {
	return &SessionService{
		state:     session.New(),
		extractor: extractor,
		answerer:  answerer,
		publisher: publisher,
	}
}

// Upload starts parsing file. The returned channel closes once the document is
// loaded or has failed.
func (s *SessionService) Upload(ctx context.Context, file models.UploadedFile) (<-chan struct{}, error) {
	file.ContentType = models.ResolveContentType(file.Name, file.ContentType)

	s.mu.Lock()
	epoch, err := s.state.BeginParsing(file.Name, file.ContentType)
	if err != nil {
		s.mu.Unlock()
		logging.Logger.Warn("Upload rejected", "file", file.Name, "content_type", file.ContentType, "error", err)
		return nil, err
	}
	s.publishLocked()
	s.mu.Unlock()
	s.flush(ctx)

	logging.Logger.Info("Upload", "file", file.Name, "content_type", file.ContentType, "bytes", len(file.Data))

	return s.background(ctx, func(ctx context.Context) {
		text, err := s.extract(ctx, file)

		s.mu.Lock()
		if err != nil {
			err = s.state.ParsingFailed(epoch, session.ParseErrorMessage(err))
		} else {
			err = s.state.DocumentLoaded(epoch, text)
		}
		if err != nil {
			s.mu.Unlock()
			logging.Logger.Warn("Upload result discarded", "file", file.Name, "error", err)
			return
		}
		s.publishLocked()
		s.mu.Unlock()
		s.flush(ctx)
	}), nil
}

// Ask appends question and starts answering it. The returned channel closes once
// the answer or the apology has been appended.
func (s *SessionService) Ask(ctx context.Context, question string) (<-chan struct{}, error) {
	s.mu.Lock()
	epoch, documentText, err := s.state.BeginQuestion(question)
	if err != nil {
		s.mu.Unlock()
		return nil, err
	}
	s.publishLocked()
	s.mu.Unlock()
	s.flush(ctx)

	return s.background(ctx, func(ctx context.Context) {
		answer, err := s.answer(ctx, documentText, question)

		s.mu.Lock()
		if err != nil {
			err = s.state.AnswerFailed(epoch, err.Error())
		} else {
			err = s.state.AnswerReceived(epoch, answer)
		}
		if err != nil {
			s.mu.Unlock()
			logging.Logger.Warn("Answer discarded", "error", err)
			return
		}
		s.publishLocked()
		s.mu.Unlock()
		s.flush(ctx)
	}), nil
}

// Reset clears the session. It is refused while a document is being parsed.
func (s *SessionService) Reset(ctx context.Context) (models.Snapshot, error) {
	s.mu.Lock()
	before := s.state.Phase()
	if err := s.state.Reset(); err != nil {
		snap := s.state.Snapshot()
		s.mu.Unlock()
		return snap, err
	}
	if before != models.PhaseUpload {
		logging.Logger.Info("Reset", "from", before.String())
		s.publishLocked()
	}
	snap := s.state.Snapshot()
	s.mu.Unlock()

	s.flush(ctx)
	return snap, nil
}

func (s *SessionService) Snapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Wait blocks until all background work has finished.
func (s *SessionService) Wait() {
	s.wg.Wait()
}

func (s *SessionService) background(ctx context.Context, fn func(context.Context)) <-chan struct{} {
	done := make(chan struct{})
	bg := context.WithoutCancel(ctx)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer close(done)
		fn(bg)
	}()
	return done
}

func (s *SessionService) extract(ctx context.Context, file models.UploadedFile) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("panic in Extract", "file", file.Name, "panic", r)
			text, err = "", fmt.Errorf("%v", r)
		}
	}()
	return s.extractor.Extract(ctx, file)
}

func (s *SessionService) answer(ctx context.Context, documentText, question string) (answer string, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logger.Error("panic in Answer", "panic", r)
			answer, err = "", fmt.Errorf("%v", r)
		}
	}()
	return s.answerer.Answer(ctx, documentText, question)
}

// publishLocked queues a snapshot of the current state. It must be called with
// s.mu held; flush delivers the queue after the lock is released.
func (s *SessionService) publishLocked() {
	if s.publisher == nil {
		return
	}
	s.outbox = append(s.outbox, models.SessionEvent{
		ID:        uuid.New().String(),
		Type:      models.EventSessionSnapshot,
		Snapshot:  s.state.Snapshot(),
		Timestamp: time.Now(),
	})
}

// flush publishes queued events in transition order without holding s.mu across
// the publisher call. One caller drains at a time; others leave their events to it.
func (s *SessionService) flush(ctx context.Context) {
	s.mu.Lock()
	if s.flushing {
		s.mu.Unlock()
		return
	}
	s.flushing = true
	for len(s.outbox) > 0 {
		event := s.outbox[0]
		s.outbox = s.outbox[1:]
		s.mu.Unlock()

		pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
		if err := s.publisher.Publish(pubCtx, event); err != nil {
			logging.Logger.Error("fail PublishSessionEvent", "event_id", event.ID, "error", err)
		}
		cancel()

		s.mu.Lock()
	}
	s.flushing = false
	s.mu.Unlock()
}
