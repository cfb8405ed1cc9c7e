// Package session holds the upload/parse/chat state machine. It is pure: no I/O, no
// goroutines and no locking. Callers serialize access.
package session

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/21R01A7263/docGPT/models"
)

var (
	ErrUnsupportedFileType = models.ErrUnsupportedFileType
	ErrUploadInProgress    = errors.New("a document is already loaded or being parsed")
	ErrEmptyQuestion       = errors.New("question is empty")
	ErrAnswerInFlight      = errors.New("an answer is already being generated")
	ErrNotChatting         = errors.New("no document is loaded")
	ErrResetWhileParsing   = errors.New("cannot reset while a document is being parsed")
	// ErrStale is returned for completions that started before a reset.
	ErrStale = errors.New("stale completion")
)

// State is the single application state record.
type State struct {
	phase        models.Phase
	documentName string
	documentText string
	errorMessage string
	answering    bool
	transcript   Transcript

	// epoch changes on every transition that starts or abandons background work.
	epoch uint64
}

// New returns a state in the Upload phase.
func New() *State {
	return &State{phase: models.PhaseUpload}
}

func (s *State) Phase() models.Phase {
	return s.phase
}

func (s *State) IsAnswering() bool {
	return s.answering
}

// BeginParsing moves Upload to Parsing. An unsupported content type is rejected
// without any change.
func (s *State) BeginParsing(name, contentType string) (uint64, error) {
	if !models.IsSupportedContentType(contentType) {
		return 0, ErrUnsupportedFileType
	}
	if s.phase != models.PhaseUpload {
		return 0, ErrUploadInProgress
	}
	s.phase = models.PhaseParsing
	s.documentName = name
	s.epoch++
	return s.epoch, nil
}

// DocumentLoaded completes a parse: Parsing to Chatting, seeding the transcript.
func (s *State) DocumentLoaded(epoch uint64, text string) error {
	if epoch != s.epoch || s.phase != models.PhaseParsing {
		return ErrStale
	}
	s.phase = models.PhaseChatting
	s.documentText = text
	s.errorMessage = ""
	s.transcript.Append(LoadedMessage(s.documentName))
	return nil
}

// ParsingFailed completes a parse with an error: Parsing to Error.
func (s *State) ParsingFailed(epoch uint64, reason string) error {
	if epoch != s.epoch || s.phase != models.PhaseParsing {
		return ErrStale
	}
	if strings.TrimSpace(reason) == "" {
		reason = unknownParseError
	}
	s.phase = models.PhaseError
	s.errorMessage = reason
	s.documentText = ""
	return nil
}

// BeginQuestion appends the user's question and marks an answer in flight. It
// returns the epoch to complete with and the document text to answer from.
func (s *State) BeginQuestion(question string) (uint64, string, error) {
	if s.phase != models.PhaseChatting {
		return 0, "", ErrNotChatting
	}
	if strings.TrimSpace(question) == "" {
		return 0, "", ErrEmptyQuestion
	}
	if s.answering {
		return 0, "", ErrAnswerInFlight
	}
	s.transcript.Append(UserMessage(question))
	s.answering = true
	s.epoch++
	return s.epoch, s.documentText, nil
}

func (s *State) AnswerReceived(epoch uint64, answer string) error {
	return s.finishAnswer(epoch, ModelMessage(answer))
}

// AnswerFailed appends an apology. The state stays Chatting.
func (s *State) AnswerFailed(epoch uint64, reason string) error {
	return s.finishAnswer(epoch, AnswerErrorMessage(reason))
}

func (s *State) finishAnswer(epoch uint64, msg models.ChatMessage) error {
	if epoch != s.epoch || s.phase != models.PhaseChatting || !s.answering {
		return ErrStale
	}
	s.transcript.Append(msg)
	s.answering = false
	return nil
}

// Reset returns to Upload and clears everything. Resetting in Upload is a no-op.
func (s *State) Reset() error {
	switch s.phase {
	case models.PhaseUpload:
		return nil
	case models.PhaseParsing:
		return ErrResetWhileParsing
	}
	*s = State{phase: models.PhaseUpload, epoch: s.epoch + 1}
	return nil
}

func (s *State) Snapshot() models.Snapshot {
	return models.Snapshot{
		State:         s.phase,
		DocumentName:  s.documentName,
		DocumentChars: utf8.RuneCountInString(s.documentText),
		ErrorMessage:  s.errorMessage,
		IsAnswering:   s.answering,
		Messages:      s.transcript.Messages(),
	}
}
