// Package contact holds the contact form: its fields, the two-step submit
// that asks for human verification before sending, and the delivery status.
// Verification and delivery are external services behind small interfaces.
package contact

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"ambient-portfolio/internal/utils"

	"github.com/google/uuid"
)

type Field int

const (
	FieldName Field = iota
	FieldEmail
	FieldSubject
	FieldMessage
)

type Fields struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Filled reports whether every field has content. The submit button stays
// disabled until it does; the delivery service does the real validation.
func (f Fields) Filled() bool {
	return strings.TrimSpace(f.Name) != "" && strings.TrimSpace(f.Email) != "" &&
		strings.TrimSpace(f.Subject) != "" && strings.TrimSpace(f.Message) != ""
}

// Get returns the value of one field.
func (f Fields) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldSubject:
		return f.Subject
	case FieldMessage:
		return f.Message
	}
	return ""
}

type Status int

const (
	StatusIdle Status = iota
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

func (s Status) String() string {
	return [...]string{"idle", "submitting", "succeeded", "failed"}[s]
}

// Message is the status line shown under the form.
func (s Status) Message() string {
	switch s {
	case StatusSubmitting:
		return "Sending your message..."
	case StatusSucceeded:
		return "Message sent successfully! I'll get back to you soon."
	case StatusFailed:
		return "Failed to send message. Please try again."
	}
	return ""
}

type VerifyState int

const (
	// VerifyHidden: the widget has not been asked for yet.
	VerifyHidden VerifyState = iota
	VerifyPending
	VerifyVerified
	// VerifyUnavailable: no site key is configured, so verification cannot run.
	VerifyUnavailable
)

// Outcome says what a submit attempt did.
type Outcome int

const (
	OutcomeVerificationShown Outcome = iota
	OutcomeNeedsVerification
	OutcomeUnavailable
	OutcomeIncomplete
	OutcomeBusy
	OutcomeSent
	OutcomeFailed
)

const UnavailableNotice = "Security verification is currently unavailable. Please contact support."

// Token is an opaque verification token with its expiry.
type Token struct {
	Value   string
	Expires time.Time
}

func (t Token) Valid(now time.Time) bool {
	return t.Value != "" && (t.Expires.IsZero() || now.Before(t.Expires))
}

type Form struct {
	mu sync.Mutex

	fields      Fields
	siteKey     string
	widgetShown bool
	token       Token
	status      Status
	lastErr     error

	submitter Submitter
	now       func() time.Time
}

func NewForm(siteKey string, submitter Submitter) *Form {
	return &Form{siteKey: siteKey, submitter: submitter, now: time.Now}
}

func (f *Form) Set(field Field, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch field {
	case FieldName:
		f.fields.Name = value
	case FieldEmail:
		f.fields.Email = value
	case FieldSubject:
		f.fields.Subject = value
	case FieldMessage:
		f.fields.Message = value
	}
	if f.status == StatusSucceeded || f.status == StatusFailed {
		f.status = StatusIdle
	}
}

func (f *Form) Fields() Fields {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fields
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *Form) VerifyState() VerifyState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.verifyStateLocked()
}

func (f *Form) verifyStateLocked() VerifyState {
	switch {
	case !f.widgetShown:
		return VerifyHidden
	case f.siteKey == "":
		return VerifyUnavailable
	case f.token.Valid(f.now()):
		return VerifyVerified
	}
	return VerifyPending
}

// CanSubmit mirrors the submit button: fields filled and nothing in flight.
// Without a valid token a press asks for verification again, so the button
// stays live after a failed or expired check. It is disabled only once the
// widget is known to be unavailable.
func (f *Form) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.fields.Filled() || f.status == StatusSubmitting {
		return false
	}
	return !f.widgetShown || f.siteKey != ""
}

// WantsChallenge reports whether a submit outcome should start the
// verification widget. It never does while verification is unavailable.
func (f *Form) WantsChallenge(out Outcome) bool {
	if out != OutcomeVerificationShown && out != OutcomeNeedsVerification {
		return false
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.siteKey != ""
}

// OnVerified stores a token from the verification widget.
func (f *Form) OnVerified(t Token) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = t
}

// OnVerifyError and OnExpired drop the token; field values are kept and the
// form goes back to needing verification.
func (f *Form) OnVerifyError(err error) {
	utils.Warn("Verification failed: %v", err)
	f.clearToken()
}

func (f *Form) OnExpired() {
	utils.Debug("Verification token expired")
	f.clearToken()
}

func (f *Form) clearToken() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = Token{}
}

// Submit runs one press of the submit button. The first press only reveals
// the verification widget; later presses send once a valid token is held.
func (f *Form) Submit(ctx context.Context) Outcome {
	f.mu.Lock()
	if f.status == StatusSubmitting {
		f.mu.Unlock()
		return OutcomeBusy
	}
	if !f.widgetShown {
		f.widgetShown = true
		f.mu.Unlock()
		return OutcomeVerificationShown
	}
	if f.siteKey == "" {
		f.mu.Unlock()
		return OutcomeUnavailable
	}
	if !f.token.Valid(f.now()) {
		f.token = Token{}
		f.mu.Unlock()
		return OutcomeNeedsVerification
	}
	if !f.fields.Filled() {
		f.mu.Unlock()
		return OutcomeIncomplete
	}

	sub := Submission{
		Fields:         f.fields,
		Token:          f.token.Value,
		IdempotencyKey: uuid.NewString(),
	}
	f.status = StatusSubmitting
	f.lastErr = nil
	f.mu.Unlock()

	err := errors.New("no submitter configured")
	if f.submitter != nil {
		err = f.submitter.Submit(ctx, sub)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		utils.Error("Failed to send contact message: %v", err)
		f.status = StatusFailed
		f.lastErr = err
		return OutcomeFailed
	}
	utils.Info("Contact message sent")
	f.status = StatusSucceeded
	f.fields = Fields{}
	f.token = Token{}
	f.widgetShown = false
	return OutcomeSent
}
