package envelope

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"

	domainErrors "moneroreq/internal/errors"
)

// GzipBase64 is the version 1 format: gzip, then standard Base64 with padding.
// Decoding also accepts the URL-safe alphabet.
type GzipBase64 struct {
	maxPayloadBytes int64
}

// NewGzipBase64 returns the version 1 format. maxPayloadBytes <= 0 selects
// DefaultMaxPayloadBytes.
func NewGzipBase64(maxPayloadBytes int64) *GzipBase64 {
	if maxPayloadBytes <= 0 {
		maxPayloadBytes = DefaultMaxPayloadBytes
	}
	return &GzipBase64{maxPayloadBytes: maxPayloadBytes}
}

func (g *GzipBase64) Encode(payload string) (string, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(payload)); err != nil {
		return "", fmt.Errorf("gzip write: %w", err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("gzip close: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

func (g *GzipBase64) Decode(data string) (string, error) {
	raw, err := decodeBase64(data)
	if err != nil {
		return "", domainErrors.MalformedPayload("base64 decode", err)
	}

	zr, err := gzip.NewReader(bytes.NewReader(raw))
	if err != nil {
		return "", domainErrors.MalformedPayload("gzip open", err)
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, g.maxPayloadBytes+1))
	if err != nil {
		return "", domainErrors.MalformedPayload("gzip read", err)
	}
	if int64(len(out)) > g.maxPayloadBytes {
		return "", domainErrors.MalformedPayload("gzip read",
			fmt.Errorf("payload exceeds %d bytes", g.maxPayloadBytes))
	}
	if !utf8.Valid(out) {
		return "", domainErrors.MalformedPayload("utf-8 decode", fmt.Errorf("payload is not valid UTF-8"))
	}
	return string(out), nil
}

func decodeBase64(data string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(data)
	if err == nil {
		return raw, nil
	}
	if urlRaw, urlErr := base64.URLEncoding.DecodeString(data); urlErr == nil {
		return urlRaw, nil
	}
	return nil, err
}
