package rest

import (
	"net/http"
	"strings"
)

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.healthHandler)

	mux.HandleFunc("POST /auth/signup", s.signupHandler)
	mux.HandleFunc("POST /auth/signin", s.signinHandler)

	mux.HandleFunc("POST /tasks", s.requireAuth(s.createTaskHandler))
	mux.HandleFunc("GET /tasks", s.requireAuth(s.listTasksHandler))
	mux.HandleFunc("GET /tasks/{id}", s.requireAuth(s.getTaskHandler))
	mux.HandleFunc("PUT /tasks/{id}", s.requireAuth(s.updateTaskHandler))
	mux.HandleFunc("DELETE /tasks/{id}", s.requireAuth(s.deleteTaskHandler))

	return unmatchedAsJSON(mux)
}

// unmatchedAsJSON leaves 404 and 405 (with its Allow header) to the mux and
// only swaps the plain-text body for a JSON error.
func unmatchedAsJSON(mux *http.ServeMux) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if h, pattern := mux.Handler(r); pattern == "" {
			h.ServeHTTP(&jsonErrorWriter{ResponseWriter: w}, r)
			return
		}
		mux.ServeHTTP(w, r)
	})
}

type jsonErrorWriter struct {
	http.ResponseWriter
	wroteHeader bool
}

func (w *jsonErrorWriter) WriteHeader(status int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	writeError(w.ResponseWriter, status, strings.ToLower(http.StatusText(status)))
}

func (w *jsonErrorWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusNotFound)
	}
	return len(b), nil
}
