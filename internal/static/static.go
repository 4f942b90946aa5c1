// Package static serves the web client from a directory on disk.
package static

import (
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/jmylchreest/ledstripd/internal/config"
)

// Handler serves files from a root directory, answering directory requests
// with the index document. If the root could not be mounted every request
// gets 503 while the API keeps working.
type Handler struct {
	root   string
	index  string
	fsys   fs.FS
	err    error
	logger *slog.Logger
}

// New mounts root. The returned Handler is always usable; a non-nil error
// reports that the filesystem is unavailable.
func New(root, index string, logger *slog.Logger) (*Handler, error) {
	if index == "" {
		index = config.DefaultIndexFile
	}
	h := &Handler{root: root, index: index, logger: logger}

	info, err := os.Stat(root)
	switch {
	case err != nil:
		h.err = fmt.Errorf("mounting %s: %w", root, err)
	case !info.IsDir():
		h.err = fmt.Errorf("mounting %s: not a directory", root)
	default:
		h.fsys = os.DirFS(root)
	}

	if h.err != nil {
		logger.Error("static: filesystem unavailable, serving API only", "root", root, "error", h.err)
		return h, h.err
	}
	logger.Info("static: serving files", "root", root, "index", index)
	return h, nil
}

// Available reports whether the filesystem was mounted.
func (h *Handler) Available() bool {
	return h.err == nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if h.err != nil {
		http.Error(w, "filesystem unavailable", http.StatusServiceUnavailable)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(h.fsys, name)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	if info.IsDir() {
		name = path.Join(name, h.index)
		if info, err = fs.Stat(h.fsys, name); err != nil || info.IsDir() {
			http.NotFound(w, r)
			return
		}
	}

	h.logger.Debug("static: serving file", "path", r.URL.Path, "file", name)
	http.ServeFileFS(w, r, h.fsys, name)
}
