// Package httpserver holds what the REST and WebSocket listeners share: server
// timeouts, graceful shutdown, the health check and the player cookie.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	readTimeout     = 10 * time.Second
	writeTimeout    = 10 * time.Second
	idleTimeout     = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

const (
	PlayerCookieName = "player_id"
	playerCookieAge  = 365 * 24 * time.Hour
)

func New(port string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}
}

// Run serves until ctx is canceled and then shuts the server down, waiting
// for in-flight requests.
func Run(ctx context.Context, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server stopped: %w", err)
	}

	return nil
}

func Ping(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

// PlayerID returns the caller's player ID from the cookie. Callers without
// one get a fresh ID and the cookie to set; the cookie is nil otherwise.
func PlayerID(r *http.Request) (string, *http.Cookie) {
	if cookie, err := r.Cookie(PlayerCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, nil
	}

	cookie := &http.Cookie{
		Name:     PlayerCookieName,
		Value:    uuid.NewString(),
		Path:     "/",
		Expires:  time.Now().Add(playerCookieAge),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}

	return cookie.Value, cookie
}
