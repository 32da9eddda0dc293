package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"moneroreq/internal/domain/request"
	domainErrors "moneroreq/internal/errors"
)

const monthlyCode = "monero-request:1:H4sIAAAAAAACAy1Qy07DMBD8lcrntorzqpxbWlIkUBH0AaUXy4k3TYRjFz+ABPHvOIXTzuzs7Gj3G7FOOWlRhsJ4Tgiaoqph8gy0lbytmFWaOi28PCpOa5BV79lhd3NtGKs6KlgJ48hBXhHwyUZJ0GryyPoOpJ1s4d2Bsd7BWW/oBTQtWyFaeaZVXwlAWRRMkXRd6RVV08ufz6AMT9E/oS33EQGr6zQNywgnGNIw9isNCAHa0E/m63hInNvomOiP5/6yV/W5c/BADHmyeuBbSJYO1tq85acWL5bqtWyG3qhhUJv1Mh1e5P6e367S/KvIy6JIqmG9jRqP7krTxc0KjuFujLRMW8qZhfFvQRjNMJ7hZB+QLFhkCZkHmJzQzy8F+4eKXQEAAA=="

func exitCode(err error) int {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return 1
}

func runCLI(args ...string) (string, string, error) {
	var stdout, stderr bytes.Buffer
	err := run(args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRun_Usage(t *testing.T) {
	_, stderr, err := runCLI()
	require.Error(t, err)
	assert.Equal(t, exitUsage, exitCode(err))
	assert.Contains(t, stderr, "Usage: mprcode")

	_, _, err = runCLI("frobnicate")
	assert.Equal(t, exitUsage, exitCode(err))

	stdout, _, err := runCLI("help")
	require.NoError(t, err)
	assert.Contains(t, stdout, "encode")
}

func TestEncodeDecode_RoundTrip(t *testing.T) {
	stdout, _, err := runCLI("encode",
		"--wallet", demoWallet,
		"--currency", "XMR",
		"--amount", "0.75",
		"--payment-id", "0123456789abcdef",
		"--start-date", "2024-05-01T00:00:00.000Z",
		"--days", "14",
		"--payments", "3",
		"--label", "Seedbox, weekly",
	)
	require.NoError(t, err)
	code := strings.TrimSpace(stdout)
	assert.True(t, strings.HasPrefix(code, "monero-request:1:"))

	stdout, _, err = runCLI("decode", "--schedule", "5", code)
	require.NoError(t, err)

	dec := json.NewDecoder(strings.NewReader(stdout))
	var got request.PaymentRequest
	require.NoError(t, dec.Decode(&got))
	assert.Equal(t, request.PaymentRequest{
		CustomLabel:         "Seedbox, weekly",
		SellersWallet:       demoWallet,
		Currency:            "XMR",
		Amount:              "0.75",
		PaymentID:           "0123456789abcdef",
		StartDate:           "2024-05-01T00:00:00.000Z",
		DaysPerBillingCycle: 14,
		NumberOfPayments:    3,
	}, got)

	assert.Contains(t, stdout, "1\t2024-05-01T00:00:00.000Z\n")
	assert.Contains(t, stdout, "3\t2024-05-29T00:00:00.000Z\n")
	assert.NotContains(t, stdout, "4\t")
}

func TestEncode_JSONUsesDefaults(t *testing.T) {
	stdout, _, err := runCLI("encode", "--wallet", demoWallet, "--amount", "1", "--json")
	require.NoError(t, err)

	var out struct {
		Code    string                 `json:"code"`
		Request request.PaymentRequest `json:"payment_request"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.NotEmpty(t, out.Code)
	assert.Equal(t, request.DefaultLabel, out.Request.CustomLabel)
	assert.Equal(t, 30, out.Request.DaysPerBillingCycle)
	assert.Equal(t, 1, out.Request.NumberOfPayments)
	assert.Len(t, out.Request.PaymentID, 16)
	assert.NotEmpty(t, out.Request.StartDate)
}

func TestEncode_Rejected(t *testing.T) {
	_, _, err := runCLI("encode", "--wallet", demoWallet, "--amount", "ten")
	require.Error(t, err)
	assert.Equal(t, exitInvalid, exitCode(err))
	assert.ErrorIs(t, err, domainErrors.ErrInvalidArgument)

	_, _, err = runCLI("encode", "--wallet", demoWallet, "--amount", "1", "--version", "2")
	assert.ErrorIs(t, err, domainErrors.ErrUnsupportedVersion)

	_, _, err = runCLI("encode", "--bogus")
	assert.Equal(t, exitUsage, exitCode(err))
}

func TestDecode(t *testing.T) {
	stdout, _, err := runCLI("decode", monthlyCode)
	require.NoError(t, err)
	assert.Contains(t, stdout, `"amount": "24.99"`)

	_, _, err = runCLI("decode")
	assert.Equal(t, exitUsage, exitCode(err))

	_, _, err = runCLI("decode", "monero-request:9:abc")
	assert.Equal(t, exitInvalid, exitCode(err))
	assert.ErrorIs(t, err, domainErrors.ErrUnsupportedVersion)
}

func TestDemo(t *testing.T) {
	stdout, _, err := runCLI("demo")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Encoded payment request:\nmonero-request:1:")
	assert.Contains(t, stdout, `"amount": "25.99"`)
	assert.Contains(t, stdout, `"currency": "USD"`)
}
