package payment

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// IntentCreator turns an amount into an opaque client secret the payer's
// browser uses to complete the charge. The provider's internals stay opaque.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amountCents int64) (string, error)
}

// Config holds provider credentials and endpoints.
type Config struct {
	SecretKey string
	Currency  string
	APIBase   string
	Timeout   time.Duration
}

// StripeClient creates payment intents against the Stripe REST API.
type StripeClient struct {
	client *resty.Client
	cfg    Config
}

// NewStripeClient builds a client for the configured provider endpoint.
func NewStripeClient(cfg Config) *StripeClient {
	if cfg.Currency == "" {
		cfg.Currency = "usd"
	}
	if cfg.APIBase == "" {
		cfg.APIBase = "https://api.stripe.com/v1"
	}
	client := resty.New()
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}
	return &StripeClient{client: client, cfg: cfg}
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
}

type intentError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateIntent creates a card payment intent and returns its client secret.
func (s *StripeClient) CreateIntent(ctx context.Context, amountCents int64) (string, error) {
	if amountCents <= 0 {
		return "", fmt.Errorf("payment amount must be positive, got %d", amountCents)
	}

	var result intentResponse
	var apiErr intentError
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.cfg.SecretKey).
		SetFormData(map[string]string{
			"amount":                 strconv.FormatInt(amountCents, 10),
			"currency":               s.cfg.Currency,
			"payment_method_types[]": "card",
		}).
		SetResult(&result).
		SetError(&apiErr).
		Post(s.cfg.APIBase + "/payment_intents")
	if err != nil {
		return "", fmt.Errorf("create payment intent: %w", err)
	}
	if resp.IsError() {
		if apiErr.Error.Message != "" {
			return "", fmt.Errorf("create payment intent: %s", apiErr.Error.Message)
		}
		return "", fmt.Errorf("create payment intent: status %d", resp.StatusCode())
	}
	if result.ClientSecret == "" {
		return "", fmt.Errorf("create payment intent: provider returned no client secret")
	}

	return result.ClientSecret, nil
}
