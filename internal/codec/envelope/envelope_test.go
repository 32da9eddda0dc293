package envelope

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "moneroreq/internal/errors"
)

// Produced with gzip(1) -9 -n, not by this package.
const knownV1 = "monero-request:1:H4sIAAAAAAACAy1Qy07DMBD8lcrntorzqpxbWlIkUBH0AaUXy4k3TYRjFz+ABPHvOIXTzuzs7Gj3G7FOOWlRhsJ4Tgiaoqph8gy0lbytmFWaOi28PCpOa5BV79lhd3NtGKs6KlgJ48hBXhHwyUZJ0GryyPoOpJ1s4d2Bsd7BWW/oBTQtWyFaeaZVXwlAWRRMkXRd6RVV08ufz6AMT9E/oS33EQGr6zQNywgnGNIw9isNCAHa0E/m63hInNvomOiP5/6yV/W5c/BADHmyeuBbSJYO1tq85acWL5bqtWyG3qhhUJv1Mh1e5P6e367S/KvIy6JIqmG9jRqP7krTxc0KjuFujLRMW8qZhfFvQRjNMJ7hZB+QLFhkCZkHmJzQzy8F+4eKXQEAAA=="

const knownV1Payload = `{"amount":"24.99","change_indicator_url":"","currency":"USD","custom_label":"Unlabeled Monero Payment Request","days_per_billing_cycle":30,"number_of_payments":1,"payment_id":"0aff662b3151e624","sellers_wallet":"4At3X5rvVypTofgmueN9s9QtrzdRe5BueFrskAZi17BoYbhzysozzoMFB6zWnTKdGC6AxEAbEE5czFR3hbEEJbsm4hCeX2S","start_date":"2023-11-15T09:07:59.019Z"}`

func TestEncodeDecode_RoundTrip(t *testing.T) {
	payload := `{"amount":"1.5","custom_label":"näive \"label\""}`

	code, err := Encode(payload, VersionV1)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "monero-request:1:"))
	assert.Equal(t, 2, strings.Count(code, ":"))

	version, got, err := Decode(code)
	require.NoError(t, err)
	assert.Equal(t, VersionV1, version)
	assert.Equal(t, payload, got)
}

func TestDecode_KnownVector(t *testing.T) {
	version, payload, err := Decode(knownV1)
	require.NoError(t, err)
	assert.Equal(t, "1", version)
	assert.Equal(t, knownV1Payload, payload)
}

func TestDecode_AcceptsURLSafeAlphabet(t *testing.T) {
	urlSafe := strings.NewReplacer("+", "-", "/", "_").Replace(knownV1)
	require.NotEqual(t, knownV1, urlSafe)

	_, payload, err := Decode(urlSafe)
	require.NoError(t, err)
	assert.Equal(t, knownV1Payload, payload)
}

func TestDecode_InvalidFormat(t *testing.T) {
	for _, input := range []string{
		"",
		"monero-request",
		"monero-request:1",
		"a:b:c:d",
		"monero-request:1:abc:def",
	} {
		t.Run(input, func(t *testing.T) {
			_, _, err := Decode(input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainErrors.ErrInvalidFormat), "got %v", err)
		})
	}
}

func TestVersionGating(t *testing.T) {
	_, err := Encode("{}", "2")
	assert.True(t, errors.Is(err, domainErrors.ErrUnsupportedVersion))

	_, _, err = Decode("monero-request:2:H4sIAAAAAAAA")
	assert.True(t, errors.Is(err, domainErrors.ErrUnsupportedVersion))

	_, _, err = Decode("monero-request::abc")
	assert.True(t, errors.Is(err, domainErrors.ErrUnsupportedVersion))
}

func TestDecode_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"not base64", "monero-request:1:!!!not-base64!!!"},
		{"not gzip", "monero-request:1:bm90IGd6aXA="},
		{"empty data", "monero-request:1:"},
		{"truncated gzip", knownV1[:len(knownV1)-40]},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Decode(tt.code)
			require.Error(t, err)
			assert.True(t, errors.Is(err, domainErrors.ErrMalformedPayload), "got %v", err)
		})
	}
}

func TestDecode_PayloadCeiling(t *testing.T) {
	small := NewDefaultRegistry(32)

	code, err := small.Encode(strings.Repeat("x", 64), VersionV1)
	require.NoError(t, err)

	_, _, err = small.Decode(code)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrMalformedPayload))
	assert.Contains(t, err.Error(), "exceeds 32 bytes")

	code, err = small.Encode(strings.Repeat("x", 32), VersionV1)
	require.NoError(t, err)
	_, payload, err := small.Decode(code)
	require.NoError(t, err)
	assert.Len(t, payload, 32)
}

func TestDecode_RejectsInvalidUTF8(t *testing.T) {
	code, err := Encode(string([]byte{0xff, 0xfe, 0xfd}), VersionV1)
	require.NoError(t, err)

	_, _, err = Decode(code)
	assert.True(t, errors.Is(err, domainErrors.ErrMalformedPayload))
}

type upperFormat struct{ out string }

func (f upperFormat) Encode(payload string) (string, error) {
	if f.out != "" {
		return f.out, nil
	}
	return strings.ToUpper(payload), nil
}

func (f upperFormat) Decode(data string) (string, error) {
	return strings.ToLower(data), nil
}

func TestRegistry_CustomVersion(t *testing.T) {
	r := NewDefaultRegistry(0)
	r.Register("9", upperFormat{})
	assert.Equal(t, []string{"1", "9"}, r.Versions())

	code, err := r.Encode("abc", "9")
	require.NoError(t, err)
	assert.Equal(t, "monero-request:9:ABC", code)

	version, payload, err := r.Decode(code)
	require.NoError(t, err)
	assert.Equal(t, "9", version)
	assert.Equal(t, "abc", payload)
}

func TestRegistry_EmptyEncoderOutput(t *testing.T) {
	r := NewRegistry()
	r.Register("1", upperFormat{})
	_, err := r.Encode("", "1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainErrors.ErrInvalidArgument))
}
