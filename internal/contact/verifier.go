package contact

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"ambient-portfolio/internal/utils"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// TokenLifetime is how long a widget token stays usable.
const TokenLifetime = 300 * time.Second

var (
	ErrVerifyFailed  = errors.New("verification failed")
	ErrVerifyExpired = errors.New("verification expired")
)

// Verifier obtains a verification token for the configured site key.
type Verifier interface {
	Verify(ctx context.Context, siteKey string) (Token, error)
}

// Verify asks v for a token and feeds the result back into the form.
func (f *Form) Verify(ctx context.Context, v Verifier) error {
	f.mu.Lock()
	siteKey := f.siteKey
	f.mu.Unlock()
	if siteKey == "" {
		return fmt.Errorf("no verification site key configured")
	}

	tok, err := v.Verify(ctx, siteKey)
	switch {
	case errors.Is(err, ErrVerifyExpired):
		f.OnExpired()
		return err
	case err != nil:
		f.OnVerifyError(err)
		return err
	}
	f.OnVerified(tok)
	return nil
}

var widgetPage = template.Must(template.New("widget").Parse(`<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>Verification</title>
<script src="https://challenges.cloudflare.com/turnstile/v0/api.js" async defer></script>
<style>body{background:#030712;display:flex;align-items:center;justify-content:center;height:100vh;margin:0}</style>
</head>
<body>
<div class="cf-turnstile" data-sitekey="{{.SiteKey}}" data-theme="dark"
     data-callback="onVerified" data-error-callback="onFailed" data-expired-callback="onExpired"></div>
<script>
window.__verification = null;
function onVerified(token) { window.__verification = {state: "verified", token: token}; }
function onFailed() { window.__verification = {state: "error"}; }
function onExpired() { window.__verification = {state: "expired"}; }
</script>
</body>
</html>`))

type widgetResult struct {
	State string `json:"state"`
	Token string `json:"token"`
}

// BrowserVerifier shows the challenge widget in a browser window driven over
// the DevTools protocol and waits for the widget's callback.
type BrowserVerifier struct {
	Headless     bool
	PollInterval time.Duration
	// ControlURL attaches to a running browser instead of launching one.
	ControlURL string
}

func NewBrowserVerifier() *BrowserVerifier {
	return &BrowserVerifier{PollInterval: 250 * time.Millisecond}
}

func (b *BrowserVerifier) Verify(ctx context.Context, siteKey string) (Token, error) {
	addr, stop, err := serveWidget(siteKey)
	if err != nil {
		return Token{}, err
	}
	defer stop()

	controlURL := b.ControlURL
	if controlURL == "" {
		controlURL, err = launcher.New().Headless(b.Headless).Launch()
		if err != nil {
			return Token{}, fmt.Errorf("launch browser: %w", err)
		}
	}

	browser := rod.New().ControlURL(controlURL).Context(ctx)
	if err := browser.Connect(); err != nil {
		return Token{}, fmt.Errorf("connect to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{URL: "http://" + addr + "/"})
	if err != nil {
		return Token{}, fmt.Errorf("open verification page: %w", err)
	}
	utils.Info("Waiting for verification in browser window")

	interval := b.PollInterval
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Token{}, ctx.Err()
		case <-ticker.C:
		}

		res, err := page.Context(ctx).Evaluate(&rod.EvalOptions{
			JS:      `() => window.__verification`,
			ByValue: true,
		})
		if err != nil {
			return Token{}, fmt.Errorf("read verification state: %w", err)
		}
		if res == nil || res.Value.Nil() {
			continue
		}
		raw, err := res.Value.MarshalJSON()
		if err != nil {
			return Token{}, err
		}
		var wr widgetResult
		if err := json.Unmarshal(raw, &wr); err != nil {
			return Token{}, fmt.Errorf("decode verification state: %w", err)
		}
		return resultToken(wr, time.Now())
	}
}

func resultToken(wr widgetResult, now time.Time) (Token, error) {
	switch wr.State {
	case "verified":
		if wr.Token == "" {
			return Token{}, ErrVerifyFailed
		}
		return Token{Value: wr.Token, Expires: now.Add(TokenLifetime)}, nil
	case "expired":
		return Token{}, ErrVerifyExpired
	}
	return Token{}, ErrVerifyFailed
}

// serveWidget serves the widget page on a loopback port so the challenge
// script sees a real http origin.
func serveWidget(siteKey string) (addr string, stop func(), err error) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("listen for verification page: %w", err)
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		widgetPage.Execute(w, struct{ SiteKey string }{siteKey})
	})
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go srv.Serve(ln)

	return ln.Addr().String(), func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		srv.Shutdown(ctx)
	}, nil
}
