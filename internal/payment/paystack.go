// Package payment verifies customer payments with the payment provider.
package payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"crunchy-cruise/internal/model"

	"github.com/rs/zerolog"
)

// DefaultPaystackURL is the Paystack API root.
const DefaultPaystackURL = "https://api.paystack.co"

// PaystackVerifier checks transaction references with Paystack.
type PaystackVerifier struct {
	baseURL   string
	secretKey string
	client    *http.Client
	logger    zerolog.Logger
}

// NewPaystackVerifier creates a verifier using the account secret key.
func NewPaystackVerifier(baseURL, secretKey string, timeout time.Duration, logger zerolog.Logger) *PaystackVerifier {
	if baseURL == "" {
		baseURL = DefaultPaystackURL
	}
	return &PaystackVerifier{
		baseURL:   strings.TrimRight(baseURL, "/"),
		secretKey: secretKey,
		client:    &http.Client{Timeout: timeout},
		logger:    logger.With().Str("service", "paystack").Logger(),
	}
}

type verifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    *struct {
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int64  `json:"amount"`
		Currency  string `json:"currency"`
	} `json:"data"`
}

// Verify looks up reference. A transaction is verified only when Paystack
// reports it as "success". Amounts come back in kobo and are converted to
// naira.
func (v *PaystackVerifier) Verify(ctx context.Context, reference string) (model.PaymentVerification, error) {
	out := model.PaymentVerification{Reference: reference}

	if v.secretKey == "" {
		return out, fmt.Errorf("paystack secret key is not configured")
	}
	if strings.TrimSpace(reference) == "" {
		return out, model.ErrMissingReference
	}

	endpoint := v.baseURL + "/transaction/verify/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return out, fmt.Errorf("failed to build verify request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+v.secretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		v.logger.Error().Err(err).Str("reference", reference).Msg("paystack request failed")
		return out, fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	var body verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return out, fmt.Errorf("failed to decode paystack response (status %d): %w", resp.StatusCode, err)
	}
	out.Message = body.Message

	// Paystack answers unknown references with 400 and status false.
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusUnauthorized {
		v.logger.Error().
			Int("status", resp.StatusCode).
			Str("message", body.Message).
			Msg("paystack returned failure")
		return out, fmt.Errorf("paystack returned status %d: %s", resp.StatusCode, body.Message)
	}

	if body.Data != nil {
		out.Status = body.Data.Status
		out.AmountMinor = body.Data.Amount / 100
		out.Currency = body.Data.Currency
	}
	out.Verified = body.Status && body.Data != nil && body.Data.Status == "success"

	v.logger.Info().
		Str("reference", reference).
		Bool("verified", out.Verified).
		Str("status", out.Status).
		Int64("amount", out.AmountMinor).
		Msg("payment verified")

	return out, nil
}
