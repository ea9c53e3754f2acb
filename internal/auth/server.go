package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/mwronski/ttvchat/internal/dto"
	"github.com/mwronski/ttvchat/pkg/handoff"
	"github.com/mwronski/ttvchat/pkg/logger"
)

const (
	// DefaultPort is the default port the capture server listens on. It is
	// part of the registered redirect URI, so changing it requires changing
	// the application registration too.
	DefaultPort = 4537
	// DefaultAddress is the default address the capture server listens on.
	DefaultAddress = ""
	// DefaultWriteTimeout is the default write timeout for server responses.
	DefaultWriteTimeout = 15 * time.Second
	// DefaultReadTimeout is the default read timeout for incoming requests.
	DefaultReadTimeout = 15 * time.Second

	// ErrMsgBadRequestInvalidRequestBody is a http response body message for bad request status code.
	ErrMsgBadRequestInvalidRequestBody = "Invalid request body"
	// ErrMsgConflictTokenAlreadyCaptured is a http response body message for conflict status code.
	ErrMsgConflictTokenAlreadyCaptured = "Token already captured"
	// ErrMsgInternalServerError is a http response body message for internal server error status code.
	ErrMsgInternalServerError = "Internal server error"
)

const indexHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>ttvchat</title>
</head>
<body>
    finishing authentication...
    <script src="/script.js"></script>
</body>
</html>
`

// Server is the local token capture server. It serves the landing page and
// the handoff script, and accepts the token the script posts back.
type Server struct {
	*http.Server

	mu       sync.Mutex
	captured bool
	tokenCh  chan string
}

// NewServer creates a new capture Server instance.
func NewServer(opts ...ServerOption) *Server {
	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", DefaultAddress, DefaultPort),
			WriteTimeout: DefaultWriteTimeout,
			ReadTimeout:  DefaultReadTimeout,
		},
		tokenCh: make(chan string, 1),
	}

	for _, opt := range opts {
		opt(server)
	}

	server.initRoutes()

	return server
}

// ServerOption is a function signature for providing options to configure the Server.
type ServerOption func(*Server)

// WithAddress is an option to set the server address.
func WithAddress(addr string) ServerOption {
	return func(s *Server) {
		s.Addr = addr
	}
}

// WithReadTimeout is an option to set the read timeout for the server.
func WithReadTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.ReadTimeout = timeout
	}
}

// WithWriteTimeout is an option to set the write timeout for the server.
func WithWriteTimeout(timeout time.Duration) ServerOption {
	return func(s *Server) {
		s.WriteTimeout = timeout
	}
}

// Token returns the channel the captured token is delivered on.
// Exactly one token is ever delivered per server lifetime.
func (s *Server) Token() <-chan string {
	return s.tokenCh
}

func (s *Server) initRoutes() {
	r := mux.NewRouter()

	r.Use(s.logMiddleware)

	r.HandleFunc("/", s.handleIndex).Methods("GET")
	r.HandleFunc("/script.js", s.handleScript).Methods("GET")
	r.HandleFunc(handoff.TokenPath, s.handleToken).Methods("POST")

	s.Handler = r
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	if _, err := w.Write([]byte(indexHTML)); err != nil {
		logger.Error(fmt.Sprintf("Failed to respond: %s", err))
	}
}

func (s *Server) handleScript(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/javascript")
	if _, err := w.Write([]byte(handoff.Script)); err != nil {
		logger.Error(fmt.Sprintf("Failed to respond: %s", err))
	}
}

func (s *Server) handleToken(w http.ResponseWriter, r *http.Request) {
	tokenDTO := &dto.TokenDTO{}
	if err := json.NewDecoder(r.Body).Decode(tokenDTO); err != nil {
		s.respondWithError(w, http.StatusBadRequest, ErrMsgBadRequestInvalidRequestBody)
		return
	}

	s.mu.Lock()
	if s.captured {
		s.mu.Unlock()
		s.respondWithError(w, http.StatusConflict, ErrMsgConflictTokenAlreadyCaptured)
		return
	}
	s.captured = true
	s.mu.Unlock()

	// tokenCh has capacity 1 and captured guards it, so this never blocks.
	s.tokenCh <- tokenDTO.Token

	s.respondWithJSON(w, http.StatusOK, tokenDTO)
}

func (s *Server) respondWithError(w http.ResponseWriter, errCode int, errMessage string) {
	s.respondWithJSON(w, errCode, dto.ErrorDTO{Error: errMessage})
}

func (s *Server) respondWithJSON(w http.ResponseWriter, code int, payload any) {
	w.Header().Set("Content-Type", "application/json")

	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error(fmt.Sprintf("Failed to marshall response to JSON: %s ", err))

		w.WriteHeader(http.StatusInternalServerError)
		if _, err := w.Write([]byte(ErrMsgInternalServerError)); err != nil {
			logger.Error(fmt.Sprintf("Failed to respond: %s", err))
		}

		return
	}

	w.WriteHeader(code)
	if _, err := w.Write(response); err != nil {
		logger.Error(fmt.Sprintf("Failed to respond: %s", err))
	}
}
