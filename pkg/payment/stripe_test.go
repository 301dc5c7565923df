package payment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripeClientCreateIntent(t *testing.T) {
	var gotAuth, gotAmount, gotCurrency, gotMethod string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payment_intents", r.URL.Path)
		require.NoError(t, r.ParseForm())
		gotAuth = r.Header.Get("Authorization")
		gotAmount = r.PostFormValue("amount")
		gotCurrency = r.PostFormValue("currency")
		gotMethod = r.PostFormValue("payment_method_types[]")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "pi_123", "client_secret": "pi_123_secret"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewStripeClient(Config{SecretKey: "sk_test_key", APIBase: server.URL})
	secret, err := client.CreateIntent(context.Background(), 4999)
	require.NoError(t, err)
	assert.Equal(t, "pi_123_secret", secret)
	assert.Equal(t, "Bearer sk_test_key", gotAuth)
	assert.Equal(t, "4999", gotAmount)
	assert.Equal(t, "usd", gotCurrency)
	assert.Equal(t, "card", gotMethod)
}

func TestStripeClientRejectsNonPositiveAmount(t *testing.T) {
	client := NewStripeClient(Config{SecretKey: "sk_test_key"})
	_, err := client.CreateIntent(context.Background(), 0)
	require.Error(t, err)
}

func TestStripeClientSurfacesProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		w.Write([]byte(`{"error": {"message": "Your card was declined."}}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewStripeClient(Config{SecretKey: "sk_test_key", APIBase: server.URL})
	_, err := client.CreateIntent(context.Background(), 4999)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "declined")
}

func TestStripeClientRejectsEmptySecret(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "pi_123"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := NewStripeClient(Config{SecretKey: "sk_test_key", APIBase: server.URL})
	_, err := client.CreateIntent(context.Background(), 4999)
	require.Error(t, err)
}
