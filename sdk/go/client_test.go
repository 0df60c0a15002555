package flowengine

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientSendsTenantHeader(t *testing.T) {
	var gotHeader, gotPath, gotMethod string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Tenant-ID")
		gotPath = r.URL.Path
		gotMethod = r.Method
		json.NewEncoder(w).Encode([]*Intent{})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTenant("acme"))
	_, err := client.GetIntents(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "acme", gotHeader)
	assert.Equal(t, "/api/v1/intents", gotPath)
	assert.Equal(t, http.MethodGet, gotMethod)
}

func TestClientDefaultsToGlobalTenant(t *testing.T) {
	var gotHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Tenant-ID")
		json.NewEncoder(w).Encode([]*Datasource{})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.GetDatasources(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "global", gotHeader)
}

func TestCreateIntentRoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/v1/intents", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "INVOICE_QUERY", payload["intent_code"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(Intent{IntentID: 7, IntentCode: "INVOICE_QUERY"})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTenant("acme"))
	intent, err := client.CreateIntent(context.Background(), map[string]interface{}{
		"intent_code":  "INVOICE_QUERY",
		"display_name": "Invoice query",
	})

	require.NoError(t, err)
	assert.Equal(t, 7, intent.IntentID)
	assert.Equal(t, "INVOICE_QUERY", intent.IntentCode)
}

func TestAPIErrorDecoding(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "intent 99 not found",
			"status": 404,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTenant("acme"))
	_, err := client.GetIntent(context.Background(), 99)

	require.Error(t, err)
	apiErr, ok := err.(*Error)
	require.True(t, ok)
	assert.Equal(t, 404, apiErr.Status)
	assert.Equal(t, "intent 99 not found", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "API error 404")
}

func TestNextExecutionOrderQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/v1/validation-rules/next-order/5", r.URL.Path)
		require.Equal(t, "de", r.URL.Query().Get("language_code"))
		json.NewEncoder(w).Encode(NextExecutionOrder{IntentID: 5, LanguageCode: "de", NextExecutionOrder: 3})
	}))
	defer server.Close()

	client := NewClient(server.URL, WithTenant("acme"))
	next, err := client.GetNextExecutionOrder(context.Background(), 5, "de")

	require.NoError(t, err)
	assert.Equal(t, 3, next.NextExecutionOrder)
}

func TestDeleteReturnsNilOnAck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		json.NewEncoder(w).Encode(Ack{Message: "tenant 'acme' deleted"})
	}))
	defer server.Close()

	client := NewClient(server.URL)
	assert.NoError(t, client.DeleteTenant(context.Background(), "acme"))
}
