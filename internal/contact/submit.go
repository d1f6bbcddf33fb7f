package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenField is the form field the delivery service reads the verification
// token from.
const TokenField = "cf-turnstile-response"

const DefaultEndpoint = "https://formspree.io/f/"

type Submission struct {
	Fields         Fields
	Token          string
	IdempotencyKey string
}

type Submitter interface {
	Submit(ctx context.Context, s Submission) error
}

// HTTPSubmitter posts submissions as JSON to a hosted form endpoint.
type HTTPSubmitter struct {
	URL    string
	Client *http.Client
}

// NewHTTPSubmitter targets the hosted form with the given id. An id that is
// already a URL is used as is.
func NewHTTPSubmitter(formID string) *HTTPSubmitter {
	url := formID
	if !strings.HasPrefix(formID, "http://") && !strings.HasPrefix(formID, "https://") {
		url = DefaultEndpoint + formID
	}
	return &HTTPSubmitter{URL: url, Client: &http.Client{Timeout: 15 * time.Second}}
}

type submitError struct {
	Error  string `json:"error"`
	Errors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

func (h *HTTPSubmitter) Submit(ctx context.Context, s Submission) error {
	body, err := json.Marshal(map[string]string{
		"name":     s.Fields.Name,
		"email":    s.Fields.Email,
		"subject":  s.Fields.Subject,
		"message":  s.Fields.Message,
		TokenField: s.Token,
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.IdempotencyKey != "" {
		req.Header.Set("Idempotency-Key", s.IdempotencyKey)
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach form endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var se submitError
	if json.Unmarshal(raw, &se) == nil {
		var msgs []string
		for _, e := range se.Errors {
			if e.Field != "" {
				msgs = append(msgs, e.Field+": "+e.Message)
			} else {
				msgs = append(msgs, e.Message)
			}
		}
		if se.Error != "" {
			msgs = append(msgs, se.Error)
		}
		if len(msgs) > 0 {
			return fmt.Errorf("form endpoint returned %d: %s", resp.StatusCode, strings.Join(msgs, "; "))
		}
	}
	return fmt.Errorf("form endpoint returned %d", resp.StatusCode)
}
