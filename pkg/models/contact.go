package models

const (
	CaptchaRecaptcha = "recaptcha"
	CaptchaHcaptcha  = "hcaptcha"
)

// ContactPayload is the contact form as posted by the browser.
type ContactPayload struct {
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           string   `json:"phone"`
	JobTitle        string   `json:"jobTitle"`
	Company         string   `json:"company"`
	Country         string   `json:"country"`
	Message         string   `json:"message"`
	PrivacyConsent  bool     `json:"privacyConsent"`
	MarketingOptIn  bool     `json:"marketingOptIn"`
	CaptchaToken    string   `json:"captchaToken"`
	CaptchaProvider string   `json:"captchaProvider"`
	Honeypot        string   `json:"honeypot"`
	TimeToSubmitMs  *float64 `json:"timeToSubmitMs"`
}

// ContactSubmission is what gets persisted in the content service.
type ContactSubmission struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Phone     *string `json:"phone"`
	JobTitle  *string `json:"jobTitle"`
	Company   *string `json:"company"`
	Country   *string `json:"country"`
	Message   *string `json:"message"`
}
