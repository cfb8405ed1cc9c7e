package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/session"
)

type fakeExtractor struct {
	text  string
	err   error
	gate  chan struct{}
	calls int
}

func (f *fakeExtractor) Extract(ctx context.Context, _ models.UploadedFile) (string, error) {
	f.calls++
	if f.gate != nil {
		<-f.gate
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return f.text, f.err
}

type fakeAnswerer struct {
	mu        sync.Mutex
	answer    string
	err       error
	gate      chan struct{}
	questions []string
	documents []string
}

func (f *fakeAnswerer) Answer(_ context.Context, documentText, question string) (string, error) {
	f.mu.Lock()
	f.questions = append(f.questions, question)
	f.documents = append(f.documents, documentText)
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	return f.answer, f.err
}

type recorder struct {
	mu     sync.Mutex
	events []models.SessionEvent
}

func (r *recorder) Publish(_ context.Context, event models.SessionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recorder) states() []models.Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Phase, len(r.events))
	for i, e := range r.events {
		out[i] = e.Snapshot.State
	}
	return out
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background work did not finish")
	}
}

func pdfFile(name string) models.UploadedFile {
	return models.UploadedFile{Name: name, ContentType: models.ContentTypePDF, Data: []byte("%PDF-1.4")}
}

func TestPolicyDocumentFallbackAnswer(t *testing.T) {
	ctx := context.Background()
	answerer := &fakeAnswerer{answer: NotFoundAnswer}
	rec := &recorder{}
	svc := NewSessionService(&fakeExtractor{text: "Policy A applies to all users."}, answerer, rec)

	done, err := svc.Upload(ctx, pdfFile("policy.pdf"))
	require.NoError(t, err)
	wait(t, done)
	require.Equal(t, models.PhaseChatting, svc.Snapshot().State)

	done, err = svc.Ask(ctx, "Does policy A apply to admins?")
	require.NoError(t, err)
	wait(t, done)

	snap := svc.Snapshot()
	assert.Equal(t, models.PhaseChatting, snap.State)
	assert.False(t, snap.IsAnswering)
	require.Len(t, snap.Messages, 3)
	assert.Equal(t, models.RoleModel, snap.Messages[2].Role)
	assert.Equal(t, NotFoundAnswer, snap.Messages[2].Content)
	last, ok := snap.LastModelMessage()
	require.True(t, ok)
	assert.Equal(t, NotFoundAnswer, last.Content)

	assert.Equal(t, []string{"Policy A applies to all users."}, answerer.documents)
	assert.Equal(t, []models.Phase{
		models.PhaseParsing, models.PhaseChatting, models.PhaseChatting, models.PhaseChatting,
	}, rec.states())
}

func TestUploadResolvesTypeFromExtension(t *testing.T) {
	svc := NewSessionService(&fakeExtractor{text: "x"}, &fakeAnswerer{}, nil)

	done, err := svc.Upload(context.Background(), models.UploadedFile{Name: "notes.docx", Data: []byte("PK")})
	require.NoError(t, err)
	wait(t, done)
	assert.Equal(t, models.PhaseChatting, svc.Snapshot().State)
}

func TestUploadUnsupportedTypeChangesNothing(t *testing.T) {
	extractor := &fakeExtractor{text: "x"}
	rec := &recorder{}
	svc := NewSessionService(extractor, &fakeAnswerer{}, rec)
	before := svc.Snapshot()

	_, err := svc.Upload(context.Background(), models.UploadedFile{Name: "notes.txt", ContentType: "text/plain"})
	assert.ErrorIs(t, err, session.ErrUnsupportedFileType)
	assert.Equal(t, before, svc.Snapshot())
	assert.Zero(t, extractor.calls)
	assert.Empty(t, rec.states())
}

func TestUploadFailureMovesToError(t *testing.T) {
	svc := NewSessionService(&fakeExtractor{err: errors.New("Failed to parse PDF: bad header")}, &fakeAnswerer{}, nil)

	done, err := svc.Upload(context.Background(), pdfFile("bad.pdf"))
	require.NoError(t, err)
	wait(t, done)

	snap := svc.Snapshot()
	assert.Equal(t, models.PhaseError, snap.State)
	assert.Equal(t, "Failed to parse PDF: bad header", snap.ErrorMessage)
	assert.Empty(t, snap.Messages)

	_, err = svc.Ask(context.Background(), "anything?")
	assert.ErrorIs(t, err, session.ErrNotChatting)

	snap, err = svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.PhaseUpload, snap.State)
}

func TestSecondUploadWhileParsingIsRejected(t *testing.T) {
	gate := make(chan struct{})
	svc := NewSessionService(&fakeExtractor{text: "x", gate: gate}, &fakeAnswerer{}, nil)

	done, err := svc.Upload(context.Background(), pdfFile("a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, models.PhaseParsing, svc.Snapshot().State)

	_, err = svc.Upload(context.Background(), pdfFile("b.pdf"))
	assert.ErrorIs(t, err, session.ErrUploadInProgress)

	_, err = svc.Reset(context.Background())
	assert.ErrorIs(t, err, session.ErrResetWhileParsing)

	close(gate)
	wait(t, done)
	assert.Equal(t, "a.pdf", svc.Snapshot().DocumentName)
}

func TestQuestionWhileAnsweringIsRejected(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	answerer := &fakeAnswerer{answer: "**Yes.**", gate: gate}
	svc := NewSessionService(&fakeExtractor{text: "doc"}, answerer, nil)

	done, err := svc.Upload(ctx, pdfFile("a.pdf"))
	require.NoError(t, err)
	wait(t, done)

	done, err = svc.Ask(ctx, "first?")
	require.NoError(t, err)
	before := svc.Snapshot()
	assert.True(t, before.IsAnswering)

	_, err = svc.Ask(ctx, "second?")
	assert.ErrorIs(t, err, session.ErrAnswerInFlight)
	assert.Equal(t, before, svc.Snapshot())

	close(gate)
	wait(t, done)
	assert.Len(t, svc.Snapshot().Messages, 3)
}

func TestAnswerFailureAppendsApology(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(&fakeExtractor{text: "doc"}, &fakeAnswerer{err: errors.New("quota exceeded")}, nil)

	done, _ := svc.Upload(ctx, pdfFile("a.pdf"))
	wait(t, done)
	done, err := svc.Ask(ctx, "why?")
	require.NoError(t, err)
	wait(t, done)

	snap := svc.Snapshot()
	assert.Equal(t, models.PhaseChatting, snap.State)
	assert.False(t, snap.IsAnswering)
	assert.Equal(t, "Sorry, I encountered an error: quota exceeded", snap.Messages[2].Content)
}

type panickyAnswerer struct{}

func (panickyAnswerer) Answer(context.Context, string, string) (string, error) {
	panic("nil candidate")
}

func TestAnswerPanicStillClearsAnswering(t *testing.T) {
	ctx := context.Background()
	svc := NewSessionService(&fakeExtractor{text: "doc"}, panickyAnswerer{}, nil)

	done, _ := svc.Upload(ctx, pdfFile("a.pdf"))
	wait(t, done)
	done, err := svc.Ask(ctx, "why?")
	require.NoError(t, err)
	wait(t, done)

	snap := svc.Snapshot()
	assert.False(t, snap.IsAnswering)
	assert.Equal(t, "Sorry, I encountered an error: nil candidate", snap.Messages[2].Content)
}

func TestResetDropsLateAnswer(t *testing.T) {
	ctx := context.Background()
	gate := make(chan struct{})
	svc := NewSessionService(&fakeExtractor{text: "doc"}, &fakeAnswerer{answer: "late", gate: gate}, nil)

	done, _ := svc.Upload(ctx, pdfFile("a.pdf"))
	wait(t, done)
	done, err := svc.Ask(ctx, "slow?")
	require.NoError(t, err)

	snap, err := svc.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PhaseUpload, snap.State)

	close(gate)
	wait(t, done)
	assert.Empty(t, svc.Snapshot().Messages)
	assert.Equal(t, models.PhaseUpload, svc.Snapshot().State)
}

func TestBackgroundWorkOutlivesCallerContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	gate := make(chan struct{})
	svc := NewSessionService(&fakeExtractor{text: "doc", gate: gate}, &fakeAnswerer{}, nil)

	_, err := svc.Upload(ctx, pdfFile("a.pdf"))
	require.NoError(t, err)
	cancel()
	close(gate)
	svc.Wait()

	assert.Equal(t, models.PhaseChatting, svc.Snapshot().State)
}

func TestResetInUploadPublishesNothing(t *testing.T) {
	rec := &recorder{}
	svc := NewSessionService(&fakeExtractor{}, &fakeAnswerer{}, rec)

	_, err := svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rec.states())
}

// slowPublisher blocks every Publish until release is closed.
type slowPublisher struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
	rec     recorder
}

func (p *slowPublisher) Publish(ctx context.Context, event models.SessionEvent) error {
	p.once.Do(func() { close(p.started) })
	<-p.release
	return p.rec.Publish(ctx, event)
}

func TestSlowPublisherDoesNotBlockSnapshot(t *testing.T) {
	pub := &slowPublisher{started: make(chan struct{}), release: make(chan struct{})}
	svc := NewSessionService(&fakeExtractor{text: "doc"}, &fakeAnswerer{}, pub)

	uploaded := make(chan (<-chan struct{}), 1)
	go func() {
		done, err := svc.Upload(context.Background(), pdfFile("a.pdf"))
		assert.NoError(t, err)
		uploaded <- done
	}()
	wait(t, pub.started)

	snap := make(chan models.Snapshot, 1)
	go func() { snap <- svc.Snapshot() }()
	select {
	case s := <-snap:
		assert.Equal(t, models.PhaseParsing, s.State)
	case <-time.After(time.Second):
		t.Fatal("Snapshot blocked behind the publisher")
	}

	close(pub.release)
	wait(t, <-uploaded)
	svc.Wait()
	assert.Equal(t, []models.Phase{models.PhaseParsing, models.PhaseChatting}, pub.rec.states())
}
