package cli

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/services"
)

type stubExtractor struct {
	text string
	err  error
}

func (s stubExtractor) Extract(context.Context, models.UploadedFile) (string, error) {
	return s.text, s.err
}

type stubAnswerer struct{}

func (stubAnswerer) Answer(_ context.Context, _ string, question string) (string, error) {
	return "**Answer** to " + question, nil
}

func TestAskSessionAnswersEachLine(t *testing.T) {
	session := services.NewSessionService(stubExtractor{text: "doc"}, stubAnswerer{}, nil)
	var out bytes.Buffer

	err := askSession(context.Background(), session,
		models.UploadedFile{Name: "a.pdf", ContentType: models.ContentTypePDF},
		strings.NewReader("first?\n\n  second?\n"), &out)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, `Document "a.pdf" loaded successfully.`)
	assert.Contains(t, text, "to first?")
	assert.Contains(t, text, "to second?")
	assert.Len(t, session.Snapshot().Messages, 5)
}

func TestAskSessionStopsOnParseError(t *testing.T) {
	session := services.NewSessionService(stubExtractor{err: errors.New("Failed to parse PDF: broken")}, stubAnswerer{}, nil)

	err := askSession(context.Background(), session,
		models.UploadedFile{Name: "a.pdf", ContentType: models.ContentTypePDF},
		strings.NewReader("never asked\n"), &bytes.Buffer{})
	require.Error(t, err)
	assert.Equal(t, "Failed to parse PDF: broken", err.Error())
}

func TestAskSessionRejectsUnsupportedFile(t *testing.T) {
	session := services.NewSessionService(stubExtractor{}, stubAnswerer{}, nil)

	err := askSession(context.Background(), session,
		models.UploadedFile{Name: "notes.txt", ContentType: "text/plain"},
		strings.NewReader(""), &bytes.Buffer{})
	assert.Error(t, err)
}

func TestQuestionSourceAsksEachArgument(t *testing.T) {
	session := services.NewSessionService(stubExtractor{text: "doc"}, stubAnswerer{}, nil)
	var out bytes.Buffer

	err := askSession(context.Background(), session,
		models.UploadedFile{Name: "a.pdf", ContentType: models.ContentTypePDF},
		questionSource([]string{"who is covered?", "since\nwhen?"}, strings.NewReader("from stdin?")), &out)
	require.NoError(t, err)

	msgs := session.Snapshot().Messages
	require.Len(t, msgs, 5)
	assert.Equal(t, "who is covered?", msgs[1].Content)
	assert.Equal(t, "since when?", msgs[3].Content)
	assert.NotContains(t, out.String(), "from stdin?")
}

func TestQuestionSourceFallsBackToStdin(t *testing.T) {
	stdin := strings.NewReader("a?\n")
	assert.Same(t, stdin, questionSource(nil, stdin))
}
