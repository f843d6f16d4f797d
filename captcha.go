package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const recaptchaVerifyURL = "https://www.google.com/recaptcha/api/siteverify"

type CaptchaVerifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

type recaptchaVerifier struct {
	secret   string
	endpoint string
	client   *http.Client
}

// NewCaptchaVerifier возвращает nil без секрета - проверка пропускается
func NewCaptchaVerifier(secret string) CaptchaVerifier {
	if secret == "" {
		return nil
	}
	return &recaptchaVerifier{
		secret:   secret,
		endpoint: recaptchaVerifyURL,
		client:   &http.Client{Timeout: 5 * time.Second},
	}
}

func (v *recaptchaVerifier) Verify(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}
	form := url.Values{"secret": {v.secret}, "response": {token}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return false, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := v.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verify: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("captcha verify: status %d", resp.StatusCode)
	}

	var result struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("captcha verify: decode: %w", err)
	}
	return result.Success, nil
}
