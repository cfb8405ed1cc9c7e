// Package watcher uploads documents dropped into an inbox directory.
package watcher

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/logging"
)

const defaultSettle = 500 * time.Millisecond

// Uploader is satisfied by services.SessionService.
type Uploader interface {
	Upload(ctx context.Context, file models.UploadedFile) (<-chan struct{}, error)
}

// Inbox watches one directory. A file is uploaded once it has stopped changing
// for the settle interval, so half-written copies are not picked up.
type Inbox struct {
	watcher  *fsnotify.Watcher
	dir      string
	uploader Uploader
	settle   time.Duration

	mu      sync.Mutex
	pending map[string]*time.Timer
	wg      sync.WaitGroup
}

func NewInbox(dir string, uploader Uploader) (*Inbox, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := w.Add(dir); err != nil {
		_ = w.Close()
		return nil, err
	}
	return &Inbox{
		watcher:  w,
		dir:      dir,
		uploader: uploader,
		settle:   defaultSettle,
		pending:  make(map[string]*time.Timer),
	}, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (in *Inbox) Run(ctx context.Context) error {
	logging.Logger.Info("Inbox watching", "dir", in.dir)
	defer in.stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-in.watcher.Events:
			if !ok {
				return nil
			}
			if !isDocument(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			in.schedule(ctx, event.Name)
		case err, ok := <-in.watcher.Errors:
			if !ok {
				return nil
			}
			logging.Logger.Error("fail Inbox watch", "dir", in.dir, "error", err)
		}
	}
}

func (in *Inbox) schedule(ctx context.Context, path string) {
	in.mu.Lock()
	defer in.mu.Unlock()

	if t, ok := in.pending[path]; ok && t.Stop() {
		t.Reset(in.settle)
		return
	}

	var t *time.Timer
	in.wg.Add(1)
	t = time.AfterFunc(in.settle, func() {
		defer in.wg.Done()
		in.mu.Lock()
		if in.pending[path] == t {
			delete(in.pending, path)
		}
		in.mu.Unlock()
		in.upload(ctx, path)
	})
	in.pending[path] = t
}

func (in *Inbox) upload(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		logging.Logger.Error("fail Inbox read", "path", path, "error", err)
		return
	}
	file := models.UploadedFile{
		Name:        filepath.Base(path),
		ContentType: models.ContentTypeForPath(path),
		Data:        data,
	}
	if _, err := in.uploader.Upload(ctx, file); err != nil {
		logging.Logger.Warn("Inbox upload skipped", "path", path, "error", err)
		return
	}
	logging.Logger.Info("Inbox upload", "path", path)
}

func (in *Inbox) stop() {
	in.mu.Lock()
	for path, t := range in.pending {
		if t.Stop() {
			in.wg.Done()
		}
		delete(in.pending, path)
	}
	in.mu.Unlock()
	in.wg.Wait()

	if err := in.watcher.Close(); err != nil {
		logging.Logger.Error("fail Inbox close", "error", err)
	}
}

func isDocument(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx":
		return true
	}
	return false
}
