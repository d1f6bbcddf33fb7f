package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m, goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"))
}

type recordingSubmitter struct {
	got []Submission
	err error
}

func (r *recordingSubmitter) Submit(_ context.Context, s Submission) error {
	r.got = append(r.got, s)
	return r.err
}

type stubVerifier struct {
	tok Token
	err error
}

func (s stubVerifier) Verify(context.Context, string) (Token, error) {
	return s.tok, s.err
}

func fill(f *Form) {
	f.Set(FieldName, "Ada")
	f.Set(FieldEmail, "ada@example.com")
	f.Set(FieldSubject, "Hello")
	f.Set(FieldMessage, "Nice site")
}

func TestTwoStepSubmit(t *testing.T) {
	sub := &recordingSubmitter{}
	f := NewForm("site-key", sub)
	fill(f)
	ctx := context.Background()

	assert.True(t, f.CanSubmit())
	assert.Equal(t, OutcomeVerificationShown, f.Submit(ctx))
	assert.Equal(t, VerifyPending, f.VerifyState())
	assert.True(t, f.CanSubmit())

	assert.Equal(t, OutcomeNeedsVerification, f.Submit(ctx))
	assert.Empty(t, sub.got)

	require.NoError(t, f.Verify(ctx, stubVerifier{tok: Token{Value: "tok-1"}}))
	assert.Equal(t, VerifyVerified, f.VerifyState())
	assert.True(t, f.CanSubmit())

	assert.Equal(t, OutcomeSent, f.Submit(ctx))
	require.Len(t, sub.got, 1)
	assert.Equal(t, "tok-1", sub.got[0].Token)
	assert.Equal(t, "Ada", sub.got[0].Fields.Name)
	assert.NotEmpty(t, sub.got[0].IdempotencyKey)

	assert.Equal(t, StatusSucceeded, f.Status())
	assert.Equal(t, Fields{}, f.Fields())
	assert.Equal(t, VerifyHidden, f.VerifyState())
}

func TestVerificationErrorKeepsFields(t *testing.T) {
	f := NewForm("site-key", &recordingSubmitter{})
	fill(f)
	ctx := context.Background()
	f.Submit(ctx)
	f.OnVerified(Token{Value: "tok"})

	err := f.Verify(ctx, stubVerifier{err: ErrVerifyExpired})
	assert.ErrorIs(t, err, ErrVerifyExpired)
	assert.Equal(t, VerifyPending, f.VerifyState())
	assert.Equal(t, "Ada", f.Fields().Name)

	f.OnVerified(Token{Value: "tok"})
	f.OnVerifyError(errors.New("widget crashed"))
	assert.Equal(t, VerifyPending, f.VerifyState())
	assert.Equal(t, "Nice site", f.Fields().Message)
}

func TestRetryAfterFailedVerification(t *testing.T) {
	sub := &recordingSubmitter{}
	f := NewForm("site-key", sub)
	fill(f)
	ctx := context.Background()

	assert.Equal(t, OutcomeVerificationShown, f.Submit(ctx))
	assert.Error(t, f.Verify(ctx, stubVerifier{err: errors.New("challenge failed")}))
	assert.Equal(t, VerifyPending, f.VerifyState())
	assert.True(t, f.CanSubmit(), "submit must stay pressable after a failed check")

	out := f.Submit(ctx)
	assert.Equal(t, OutcomeNeedsVerification, out)
	assert.True(t, f.WantsChallenge(out))
	require.NoError(t, f.Verify(ctx, stubVerifier{tok: Token{Value: "tok-2"}}))
	assert.Equal(t, VerifyVerified, f.VerifyState())

	assert.Equal(t, OutcomeSent, f.Submit(ctx))
	require.Len(t, sub.got, 1)
	assert.Equal(t, "tok-2", sub.got[0].Token)
}

func TestRetryAfterExpiry(t *testing.T) {
	sub := &recordingSubmitter{}
	f := NewForm("site-key", sub)
	now := time.Unix(1000, 0)
	f.now = func() time.Time { return now }
	fill(f)
	ctx := context.Background()

	f.Submit(ctx)
	f.OnVerified(Token{Value: "tok", Expires: now.Add(TokenLifetime)})
	now = now.Add(TokenLifetime + time.Second)
	assert.True(t, f.CanSubmit())

	f.OnExpired()
	assert.True(t, f.CanSubmit())
	assert.Equal(t, OutcomeNeedsVerification, f.Submit(ctx))
	assert.Empty(t, sub.got)
}

func TestExpiredTokenIsRejectedAtSubmit(t *testing.T) {
	sub := &recordingSubmitter{}
	f := NewForm("site-key", sub)
	now := time.Unix(1000, 0)
	f.now = func() time.Time { return now }
	fill(f)

	f.Submit(context.Background())
	f.OnVerified(Token{Value: "tok", Expires: now.Add(TokenLifetime)})
	now = now.Add(TokenLifetime + time.Second)

	assert.Equal(t, OutcomeNeedsVerification, f.Submit(context.Background()))
	assert.Empty(t, sub.got)
	assert.Equal(t, VerifyPending, f.VerifyState())
}

func TestMissingSiteKey(t *testing.T) {
	f := NewForm("", &recordingSubmitter{})
	fill(f)
	out := f.Submit(context.Background())
	assert.Equal(t, OutcomeVerificationShown, out)
	assert.False(t, f.WantsChallenge(out))
	assert.Equal(t, VerifyUnavailable, f.VerifyState())
	assert.False(t, f.CanSubmit())
	assert.Equal(t, OutcomeUnavailable, f.Submit(context.Background()))
	assert.Error(t, f.Verify(context.Background(), stubVerifier{tok: Token{Value: "x"}}))
}

func TestFailedSubmitKeepsFields(t *testing.T) {
	sub := &recordingSubmitter{err: errors.New("boom")}
	f := NewForm("site-key", sub)
	fill(f)
	f.Submit(context.Background())
	f.OnVerified(Token{Value: "tok"})

	assert.Equal(t, OutcomeFailed, f.Submit(context.Background()))
	assert.Equal(t, StatusFailed, f.Status())
	assert.EqualError(t, f.Err(), "boom")
	assert.Equal(t, "Ada", f.Fields().Name)
	assert.Equal(t, "Failed to send message. Please try again.", f.Status().Message())

	f.Set(FieldName, "Grace")
	assert.Equal(t, StatusIdle, f.Status())
}

func TestHTTPSubmitter(t *testing.T) {
	var body map[string]string
	var key string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key = r.Header.Get("Idempotency-Key")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &body)
		if body["email"] == "bad" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			io.WriteString(w, `{"errors":[{"field":"email","message":"should be an email"}]}`)
			return
		}
		io.WriteString(w, `{"ok":true}`)
	}))
	defer srv.Close()

	h := NewHTTPSubmitter(srv.URL)
	h.Client = srv.Client()
	defer h.Client.CloseIdleConnections()

	err := h.Submit(context.Background(), Submission{
		Fields:         Fields{Name: "Ada", Email: "ada@example.com", Subject: "Hi", Message: "Hello"},
		Token:          "tok",
		IdempotencyKey: "key-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok", body[TokenField])
	assert.Equal(t, "Ada", body["name"])
	assert.Equal(t, "key-1", key)

	err = h.Submit(context.Background(), Submission{Fields: Fields{Email: "bad"}})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "email: should be an email"), err.Error())

	assert.Equal(t, "https://formspree.io/f/abc", NewHTTPSubmitter("abc").URL)
}

func TestResultToken(t *testing.T) {
	now := time.Unix(0, 0)
	tok, err := resultToken(widgetResult{State: "verified", Token: "t"}, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(TokenLifetime), tok.Expires)

	_, err = resultToken(widgetResult{State: "expired"}, now)
	assert.ErrorIs(t, err, ErrVerifyExpired)
	_, err = resultToken(widgetResult{State: "error"}, now)
	assert.ErrorIs(t, err, ErrVerifyFailed)
}

func TestWidgetPageServesSiteKey(t *testing.T) {
	addr, stop, err := serveWidget("0x4AAA")
	require.NoError(t, err)
	defer stop()

	client := &http.Client{}
	defer client.CloseIdleConnections()
	resp, err := client.Get("http://" + addr + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	page, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(page), `data-sitekey="0x4AAA"`)
}
