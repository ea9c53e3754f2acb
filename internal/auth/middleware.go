package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/mwronski/ttvchat/pkg/logger"
)

type contextKey string

const contextKeyReqID = contextKey("reqID")

func (s *Server) logMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.New().String()

		clientIP := getClientIP(r)
		endpoint := r.URL.Path
		httpMethod := r.Method

		logger.Info(fmt.Sprintf(
			"Received request [ID: %s] from [ClientIP: %s] to [Endpoint: %s] with [HTTP Method: %s]",
			requestID, clientIP, endpoint, httpMethod,
		))

		r = r.WithContext(context.WithValue(r.Context(), contextKeyReqID, requestID))

		next.ServeHTTP(w, r)
	})
}

func getClientIP(r *http.Request) string {
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	}

	colonIndex := strings.Index(ip, ":")
	if colonIndex != -1 {
		ip = ip[:colonIndex]
	}
	return ip
}
