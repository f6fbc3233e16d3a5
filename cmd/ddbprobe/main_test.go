package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const propertyItem = `{"PK":{"S":"PROPERTY#1"},"SK":{"S":"METADATA"},"EntityType":{"S":"Property"},` +
	`"Name":{"S":"Burj View"},"GSI1PK":{"S":"CITY#Dubai#UAE"},` +
	`"Address":{"M":{"city":{"S":"Dubai"},"country":{"S":"UAE"}}}}`

// fakeDynamo imita o protocolo JSON do DynamoDB para Scan e Query.
func fakeDynamo(t *testing.T, queryStatus int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)

		w.Header().Set("Content-Type", "application/x-amz-json-1.0")
		target := r.Header.Get("X-Amz-Target")

		switch {
		case strings.HasSuffix(target, ".Query") && queryStatus != http.StatusOK:
			w.WriteHeader(queryStatus)
			_, _ = w.Write([]byte(`{"__type":"com.amazonaws.dynamodb.v20120810#ResourceNotFoundException","message":"Requested resource not found"}`))
		case strings.HasSuffix(target, ".Query"):
			_, _ = w.Write([]byte(`{"Items":[` + propertyItem + `],"Count":1,"ScannedCount":1}`))
		case strings.HasSuffix(target, ".Scan") && body["FilterExpression"] == nil:
			_, _ = w.Write([]byte(`{"Items":[` + propertyItem + `],"Count":1,"ScannedCount":1}`))
		case strings.HasSuffix(target, ".Scan"):
			_, _ = w.Write([]byte(`{"Items":[],"Count":0,"ScannedCount":3}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"__type":"com.amazon.coral.service#UnknownOperationException"}`))
		}
	}))
}

func isolateEnv(t *testing.T, endpoint string) {
	t.Helper()
	for _, k := range []string{
		"PROBE_CONFIG_FILE", "PROBE_TABLE_NAME", "AWS_REGION", "AWS_DEFAULT_REGION", "AWS_PROFILE",
		"PROBE_LOCATION_INDEX", "PROBE_CITY", "PROBE_COUNTRY", "PROBE_LIST_LIMIT", "PROBE_FILTER_LIMIT",
		"PROBE_TIMEOUT", "DD_ENABLED", "DD_AGENT_HOST", "AWS_SESSION_TOKEN",
	} {
		t.Setenv(k, "")
	}
	dir := t.TempDir()
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(dir, "config"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(dir, "credentials"))
	t.Setenv("AWS_EC2_METADATA_DISABLED", "true")
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("PROBE_LOG_ENABLED", "false")
	t.Setenv("PROBE_DYNAMODB_ENDPOINT", endpoint)
}

func TestRun_AgainstFakeDynamo(t *testing.T) {
	server := fakeDynamo(t, http.StatusOK)
	defer server.Close()
	isolateEnv(t, server.URL)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)

	out := stdout.String()
	assert.Equal(t, 0, code, stderr.String())
	assert.Contains(t, out, "Table: hotel-booking-properties-dev")
	assert.Contains(t, out, "Raw item structure:")
	assert.Contains(t, out, `"GSI1PK": "CITY#Dubai#UAE"`)
	assert.Contains(t, out, "First item:\n  PK: PROPERTY#1\n  Name: Burj View")
	assert.Equal(t, 3, strings.Count(out, "✓ Found 0 items"))
	assert.Contains(t, out, "=== Summary: 5 passed, 0 failed ===")
}

func TestRun_ProbeFailureStillExitsZero(t *testing.T) {
	server := fakeDynamo(t, http.StatusBadRequest)
	defer server.Close()
	isolateEnv(t, server.URL)

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)

	out := stdout.String()
	require.Equal(t, 0, code, stderr.String())
	assert.Contains(t, out, "✗ Error:")
	assert.Contains(t, out, "Requested resource not found")
	assert.Contains(t, out, "Code: ResourceNotFoundException")
	assert.Contains(t, out, "=== Summary: 4 passed, 1 failed ===")
	assert.Contains(t, out, "=== Tests Complete ===")
}

func TestRun_InvalidConfiguration(t *testing.T) {
	isolateEnv(t, "")
	t.Setenv("PROBE_FILTER_LIMIT", "five")

	var stdout, stderr bytes.Buffer
	code := run(context.Background(), &stdout, &stderr)

	assert.Equal(t, 1, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "Erro de configuração")
	assert.Contains(t, stderr.String(), "PROBE_FILTER_LIMIT")
}
