package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/21R01A7263/docGPT/bootstrap"
	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/services"
)

var askCmd = &cobra.Command{
	Use:   "ask <file> [question...]",
	Short: "Ask questions about a document from the terminal",
	Long: `Load a PDF or DOCX file and answer questions about it.

Each argument after the file is asked as its own question, so quote questions
that contain spaces. Without arguments, each non-empty line read from stdin is
asked in turn.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

// sessionRunner is the part of SessionService the ask command drives.
type sessionRunner interface {
	Upload(ctx context.Context, file models.UploadedFile) (<-chan struct{}, error)
	Ask(ctx context.Context, question string) (<-chan struct{}, error)
	Snapshot() models.Snapshot
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	ctx := cmd.Context()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	infra, err := bootstrap.NewInfrastructure(cfg)
	if err != nil {
		return err
	}
	defer infra.Shutdown()

	svcs, err := bootstrap.NewServices(ctx, cfg, infra)
	if err != nil {
		return err
	}

	file := models.UploadedFile{
		Name:        filepath.Base(args[0]),
		ContentType: models.ContentTypeForPath(args[0]),
		Data:        data,
	}
	return askSession(ctx, svcs.Session, file, questionSource(args[1:], cmd.InOrStdin()), cmd.OutOrStdout())
}

// questionSource yields one line per question argument, or stdin when there are none.
func questionSource(questions []string, stdin io.Reader) io.Reader {
	if len(questions) == 0 {
		return stdin
	}
	lines := make([]string, len(questions))
	for i, q := range questions {
		lines[i] = strings.ReplaceAll(q, "\n", " ")
	}
	return strings.NewReader(strings.Join(lines, "\n"))
}

func askSession(ctx context.Context, session sessionRunner, file models.UploadedFile, questions io.Reader, out io.Writer) error {
	done, err := session.Upload(ctx, file)
	if err != nil {
		return err
	}
	if err := waitDone(ctx, done); err != nil {
		return err
	}
	snap := session.Snapshot()
	if snap.State == models.PhaseError {
		return errors.New(snap.ErrorMessage)
	}
	if last, ok := snap.LastModelMessage(); ok {
		fmt.Fprintln(out, RenderMarkdown(last.Content))
	}

	scanner := bufio.NewScanner(questions)
	for scanner.Scan() {
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		fmt.Fprintln(out, questionStyle.Render("> "+question))

		done, err := session.Ask(ctx, question)
		if err != nil {
			return err
		}
		if err := waitDone(ctx, done); err != nil {
			return err
		}
		if last, ok := session.Snapshot().LastModelMessage(); ok {
			fmt.Fprintln(out, RenderMarkdown(last.Content))
		}
	}
	return scanner.Err()
}

func waitDone(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

var _ sessionRunner = (*services.SessionService)(nil)
