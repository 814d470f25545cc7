package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"playlistformatter/internal/utils"
)

const defaultCallbackPort = 8080

var openBrowser = utils.OpenBrowser

// BaseAdapter provides common functionality for platform adapters
type BaseAdapter struct {
	authenticated bool
	platformName  string
	callbackPort  int
	state         string
}

// NewBaseAdapter creates a new BaseAdapter
func NewBaseAdapter(platformName string, callbackPort int) BaseAdapter {
	if callbackPort <= 0 {
		callbackPort = defaultCallbackPort
	}
	return BaseAdapter{
		platformName: platformName,
		callbackPort: callbackPort,
		state:        utils.GenerateState(),
	}
}

// SetAuthenticated updates the authentication status
func (b *BaseAdapter) SetAuthenticated(status bool) {
	b.authenticated = status
}

// IsAuthenticated checks if the adapter is authenticated
func (b *BaseAdapter) IsAuthenticated() bool {
	return b.authenticated
}

// CheckAuth ensures the adapter is authenticated before making API calls
func (b *BaseAdapter) CheckAuth() error {
	if !b.IsAuthenticated() {
		return fmt.Errorf("not authenticated, call Authenticate() first for %s", b.platformName)
	}
	return nil
}

// PlatformName returns the name of the platform
func (b *BaseAdapter) PlatformName() string {
	return b.platformName
}

// RedirectURL is the OAuth redirect served by WaitForCallback
func (b *BaseAdapter) RedirectURL() string {
	return fmt.Sprintf("http://localhost:%d/callback", b.callbackPort)
}

// WaitForCallback serves the OAuth redirect locally, opens authURL in the
// browser and blocks until the first callback has been handled. The state
// parameter is checked before complete is called.
func (b *BaseAdapter) WaitForCallback(authURL string, complete func(r *http.Request) error) error {
	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		if st := r.FormValue("state"); st != b.state {
			http.NotFound(w, r)
			finish(fmt.Errorf("state mismatch: %s != %s", st, b.state))
			return
		}
		if err := complete(r); err != nil {
			http.Error(w, "Couldn't complete login", http.StatusForbidden)
			finish(err)
			return
		}
		fmt.Fprintf(w, "Login Completed! You can now close this window.")
		finish(nil)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		slog.Debug("unexpected callback request", "url", r.URL.String())
	})

	srv := &http.Server{Addr: fmt.Sprintf(":%d", b.callbackPort), Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			finish(fmt.Errorf("callback server: %w", err))
		}
	}()

	fmt.Printf("Please log in to %s by visiting the following page in your browser: %s\n", b.platformName, authURL)
	openBrowser(authURL)

	err := <-done
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if shutdownErr := srv.Shutdown(ctx); shutdownErr != nil {
		slog.Warn("callback server shutdown", "error", shutdownErr)
	}
	return err
}
