package httpmux

import (
	"io/fs"
	"net/http"

	routepath "github.com/indie-hain/console/internal/services/console/routepath"
)

// MountStatic wires static asset serving into the root mux.
func MountStatic(rootMux *http.ServeMux, staticFS fs.FS, withStaticMime func(http.Handler) http.Handler) {
	if rootMux == nil || staticFS == nil {
		return
	}
	staticHandler := http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(staticFS)))
	if withStaticMime != nil {
		staticHandler = withStaticMime(staticHandler)
	}
	rootMux.Handle(routepath.StaticPrefix, staticHandler)
}

// MountConsoleRoutes mounts the session-guarded console routes under the
// root path.
func MountConsoleRoutes(rootMux *http.ServeMux, consoleHandler http.Handler) {
	if rootMux == nil || consoleHandler == nil {
		return
	}
	rootMux.Handle(routepath.Root, consoleHandler)
}
