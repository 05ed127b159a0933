package services

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"doll-web/pkg/logger"
	"doll-web/pkg/models"
)

// Minimum time a human needs to fill in the form.
const minTimeToSubmitMs = 800

var (
	contactEmailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	contactPhoneRe = regexp.MustCompile(`^[\d+().\-\s]{7,}$`)
)

// SubmissionStore persists submissions in the content service.
type SubmissionStore interface {
	CreateContactSubmission(ctx context.Context, sub models.ContactSubmission) error
}

// Notifier tells the team about a new submission.
type Notifier interface {
	Notify(ctx context.Context, p models.ContactPayload) error
}

// CaptchaVerifier checks the CAPTCHA token attached to a submission.
type CaptchaVerifier interface {
	Verify(ctx context.Context, p models.ContactPayload) bool
}

// SubmissionRecorder keeps a local record of every accepted submission.
type SubmissionRecorder interface {
	Record(ctx context.Context, rec SubmissionRecord) error
}

// ContactRejection is returned for submissions that are refused outright.
// Either Message or Errors is set.
type ContactRejection struct {
	Message string
	Errors  []string
}

func (r *ContactRejection) Error() string {
	if r.Message != "" {
		return r.Message
	}
	return strings.Join(r.Errors, "; ")
}

// ContactOutcome describes an accepted submission. Warning is set when it
// could not be both stored and emailed.
type ContactOutcome struct {
	SavedToCMS bool
	EmailSent  bool
	Warning    string
}

// contactForm is the trimmed payload as seen by the validator. Field order
// is the order errors are reported in.
type contactForm struct {
	FirstName      string `validate:"required,singleline"`
	LastName       string `validate:"required,singleline"`
	Email          string `validate:"required,contactemail"`
	Phone          string `validate:"required,contactphone"`
	JobTitle       string `validate:"required,singleline"`
	Company        string `validate:"required,singleline"`
	Country        string `validate:"required,singleline"`
	PrivacyConsent bool   `validate:"required"`
}

var contactMessages = map[string]string{
	"FirstName.required":      "First name is required",
	"FirstName.singleline":    "First name must be a single line",
	"LastName.required":       "Last name is required",
	"LastName.singleline":     "Last name must be a single line",
	"Email.required":          "Email is required",
	"Email.contactemail":      "Email format looks invalid",
	"Phone.required":          "Phone number is required",
	"Phone.contactphone":      "Phone number format looks invalid",
	"JobTitle.required":       "Job title is required",
	"JobTitle.singleline":     "Job title must be a single line",
	"Company.required":        "Company is required",
	"Company.singleline":      "Company must be a single line",
	"Country.required":        "Country is required",
	"Country.singleline":      "Country must be a single line",
	"PrivacyConsent.required": "Privacy consent is required",
}

type ContactService struct {
	store    SubmissionStore
	notifier Notifier
	captcha  CaptchaVerifier
	recorder SubmissionRecorder
	validate *validator.Validate
}

// NewContactService wires the contact pipeline. recorder may be nil.
func NewContactService(store SubmissionStore, notifier Notifier, captcha CaptchaVerifier, recorder SubmissionRecorder) *ContactService {
	v := validator.New()
	_ = v.RegisterValidation("contactemail", func(fl validator.FieldLevel) bool {
		return contactEmailRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("contactphone", func(fl validator.FieldLevel) bool {
		return contactPhoneRe.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("singleline", func(fl validator.FieldLevel) bool {
		return !strings.ContainsAny(fl.Field().String(), "\r\n")
	})

	return &ContactService{
		store:    store,
		notifier: notifier,
		captcha:  captcha,
		recorder: recorder,
		validate: v,
	}
}

// Validate returns the human-readable problems with p, in form order.
func (s *ContactService) Validate(p models.ContactPayload) []string {
	form := contactForm{
		FirstName:      strings.TrimSpace(p.FirstName),
		LastName:       strings.TrimSpace(p.LastName),
		Email:          strings.TrimSpace(p.Email),
		Phone:          strings.TrimSpace(p.Phone),
		JobTitle:       strings.TrimSpace(p.JobTitle),
		Company:        strings.TrimSpace(p.Company),
		Country:        strings.TrimSpace(p.Country),
		PrivacyConsent: p.PrivacyConsent,
	}

	err := s.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{err.Error()}
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if msg, ok := contactMessages[fe.Field()+"."+fe.Tag()]; ok {
			msgs = append(msgs, msg)
		}
	}
	return msgs
}

// Submit runs a contact submission through the spam guards, validation and
// CAPTCHA, then stores and announces it. Storage and email failures do not
// fail the submission; they show up in the outcome's warning.
func (s *ContactService) Submit(ctx context.Context, p models.ContactPayload) (*ContactOutcome, error) {
	if p.Honeypot != "" {
		return nil, &ContactRejection{Message: "Invalid submission"}
	}
	if p.TimeToSubmitMs != nil && *p.TimeToSubmitMs < minTimeToSubmitMs {
		return nil, &ContactRejection{Message: "Form submitted too quickly"}
	}

	if errs := s.Validate(p); len(errs) > 0 {
		return nil, &ContactRejection{Errors: errs}
	}

	if s.captcha != nil && !s.captcha.Verify(ctx, p) {
		return nil, &ContactRejection{Errors: []string{"Captcha verification failed"}}
	}

	sub := submissionFromPayload(p)
	out := &ContactOutcome{}

	if err := s.store.CreateContactSubmission(ctx, sub); err != nil {
		logger.Error("failed to save contact submission: %v", err)
	} else {
		out.SavedToCMS = true
	}

	if err := s.notifier.Notify(ctx, p); err != nil {
		if errors.Is(err, ErrMailNotConfigured) {
			logger.Warn("skipping email send: SMTP settings missing")
		} else {
			logger.Error("email send failed: %v", err)
		}
	} else {
		out.EmailSent = true
	}

	if s.recorder != nil {
		rec := SubmissionRecord{
			Submission:     sub,
			MarketingOptIn: p.MarketingOptIn,
			SavedToCMS:     out.SavedToCMS,
			EmailSent:      out.EmailSent,
		}
		if err := s.recorder.Record(ctx, rec); err != nil {
			logger.Warn("failed to record submission locally: %v", err)
		}
	}

	if !out.SavedToCMS || !out.EmailSent {
		out.Warning = BuildWarning(out.SavedToCMS, out.EmailSent)
	}
	return out, nil
}

// BuildWarning explains which half of a submission failed.
func BuildWarning(savedToCMS, emailSent bool) string {
	switch {
	case !savedToCMS && !emailSent:
		return "Could not persist to Strapi or send email. Check Strapi permissions/content type and SMTP configuration."
	case !savedToCMS:
		return "Email sent but could not persist to Strapi. Check API token permissions or contact-submissions content type."
	case !emailSent:
		return "Saved to Strapi but email failed. Check SMTP configuration."
	default:
		return ""
	}
}

func submissionFromPayload(p models.ContactPayload) models.ContactSubmission {
	optional := func(s string) *string {
		t := strings.TrimSpace(s)
		if t == "" {
			return nil
		}
		return &t
	}
	return models.ContactSubmission{
		FirstName: strings.TrimSpace(p.FirstName),
		LastName:  strings.TrimSpace(p.LastName),
		Email:     strings.TrimSpace(p.Email),
		Phone:     optional(p.Phone),
		JobTitle:  optional(p.JobTitle),
		Company:   optional(p.Company),
		Country:   optional(p.Country),
		Message:   optional(p.Message),
	}
}
