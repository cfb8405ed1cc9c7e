package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/21R01A7263/docGPT/bootstrap"
	"github.com/21R01A7263/docGPT/pkg/logging"
)

var (
	servePort  string
	serveInbox string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API",
	Long: `Start the HTTP server. The page at / walks through upload, parsing and chat;
the same operations are exposed under /api and state changes are pushed on /ws/session.

With --inbox, PDF and DOCX files dropped into the directory are uploaded automatically.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&servePort, "port", "", "HTTP port, overrides PORT")
	serveCmd.Flags().StringVar(&serveInbox, "inbox", "", "directory to watch for documents, overrides INBOX_DIR")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()
	if servePort != "" {
		cfg.HttpPort = servePort
	}
	if serveInbox != "" {
		cfg.InboxDir = serveInbox
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.NewApp(ctx, cfg)
	if err != nil {
		logging.Logger.Error("fail NewApp", "error", err)
		return err
	}
	return app.Run(ctx)
}
