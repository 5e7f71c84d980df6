package tunnel

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"golang.ngrok.com/ngrok"
	ngrokConfig "golang.ngrok.com/ngrok/config"
)

// Config controls tunnel bring-up. AuthToken, if empty, falls back to
// NGROK_AUTHTOKEN then NGROK_AUTH_TOKEN. Domain, if empty, falls back to
// NGROK_DOMAIN.
type Config struct {
	AuthToken string
	Domain    string
}

func (c Config) resolveAuthToken() string {
	if c.AuthToken != "" {
		return c.AuthToken
	}
	if v := os.Getenv("NGROK_AUTHTOKEN"); v != "" {
		return v
	}
	return os.Getenv("NGROK_AUTH_TOKEN")
}

func (c Config) resolveDomain() string {
	if c.Domain != "" {
		return c.Domain
	}
	return os.Getenv("NGROK_DOMAIN")
}

// Serve returns at once. A background goroutine starts an ngrok tunnel,
// sends its public URL on urlCh so callers can log it, then serves handler
// over it; any failure to start or serve is sent on errCh.
func Serve(ctx context.Context, cfg Config, handler http.Handler) (urlCh <-chan string, errCh <-chan error) {
	urls := make(chan string, 1)
	errs := make(chan error, 1)

	go func() {
		authToken := cfg.resolveAuthToken()
		if authToken == "" {
			errs <- fmt.Errorf("tunnel: no ngrok auth token (set Config.AuthToken, NGROK_AUTHTOKEN, or NGROK_AUTH_TOKEN)")
			return
		}

		var endpoint ngrokConfig.Tunnel
		if domain := cfg.resolveDomain(); domain != "" {
			endpoint = ngrokConfig.HTTPEndpoint(ngrokConfig.WithDomain(domain))
		} else {
			endpoint = ngrokConfig.HTTPEndpoint()
		}

		tun, err := ngrok.Listen(ctx, endpoint, ngrok.WithAuthtoken(authToken))
		if err != nil {
			errs <- fmt.Errorf("tunnel: failed to start ngrok tunnel: %w", err)
			return
		}
		defer tun.Close()

		urls <- tun.URL()

		if err := http.Serve(tun, handler); err != nil && err != http.ErrServerClosed {
			errs <- fmt.Errorf("tunnel: ngrok server error: %w", err)
		}
	}()

	return urls, errs
}
