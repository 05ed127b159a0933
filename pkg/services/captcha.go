package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goccy/go-json"

	"doll-web/pkg/logger"
	"doll-web/pkg/models"
)

const (
	recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"
	hcaptchaVerifyURL  = "https://hcaptcha.com/siteverify"

	minRecaptchaScore = 0.3
)

// Captcha verifies reCAPTCHA and hCaptcha tokens. With no secrets
// configured every submission passes.
type Captcha struct {
	recaptchaSecret string
	hcaptchaSecret  string
	recaptchaURL    string
	hcaptchaURL     string
	client          *http.Client
}

var _ CaptchaVerifier = (*Captcha)(nil)

func NewCaptcha(recaptchaSecret, hcaptchaSecret string) *Captcha {
	return &Captcha{
		recaptchaSecret: recaptchaSecret,
		hcaptchaSecret:  hcaptchaSecret,
		recaptchaURL:    recaptchaVerifyURL,
		hcaptchaURL:     hcaptchaVerifyURL,
		client:          &http.Client{Timeout: defaultTimeout},
	}
}

func (c *Captcha) Enabled() bool {
	return c.recaptchaSecret != "" || c.hcaptchaSecret != ""
}

func (c *Captcha) Verify(ctx context.Context, p models.ContactPayload) bool {
	if !c.Enabled() {
		return true
	}
	if p.CaptchaToken == "" || p.CaptchaProvider == "" {
		return false
	}

	var res struct {
		Success bool     `json:"success"`
		Score   *float64 `json:"score"`
	}

	switch {
	case p.CaptchaProvider == models.CaptchaRecaptcha && c.recaptchaSecret != "":
		if err := c.post(ctx, c.recaptchaURL, c.recaptchaSecret, p.CaptchaToken, &res); err != nil {
			logger.Error("captcha verification error: %v", err)
			return false
		}
		score := 0.0
		if res.Score != nil {
			score = *res.Score
		}
		return res.Success && score >= minRecaptchaScore
	case p.CaptchaProvider == models.CaptchaHcaptcha && c.hcaptchaSecret != "":
		if err := c.post(ctx, c.hcaptchaURL, c.hcaptchaSecret, p.CaptchaToken, &res); err != nil {
			logger.Error("captcha verification error: %v", err)
			return false
		}
		return res.Success
	}
	return false
}

func (c *Captcha) post(ctx context.Context, endpoint, secret, token string, out any) error {
	form := url.Values{"secret": {secret}, "response": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("verifying token: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding verification response: %w", err)
	}
	return nil
}
