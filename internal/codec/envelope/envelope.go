// Package envelope wraps serialized payment requests into the shareable
// "monero-request:<version>:<data>" token and unwraps them again.
//
// Each version owns its own Format. Decoders reject versions they have
// no Format for instead of guessing, so new wire formats can be added
// without old readers misinterpreting them.
package envelope

import (
	"sort"
	"strings"

	domainErrors "moneroreq/internal/errors"
)

const (
	// Prefix is the format tag of every envelope.
	Prefix = "monero-request"

	// VersionV1 is gzip-compressed, standard Base64 encoded UTF-8.
	VersionV1 = "1"

	// DefaultMaxPayloadBytes caps the decompressed size of a payload.
	DefaultMaxPayloadBytes = 64 << 10

	separator = ":"
)

// Format turns a serialized payload into the data segment of an envelope
// and back.
type Format interface {
	Encode(payload string) (string, error)
	Decode(data string) (string, error)
}

// Registry dispatches envelopes to the Format registered for their version.
// A Registry must not be modified once it is shared between goroutines.
type Registry struct {
	formats map[string]Format
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{formats: make(map[string]Format)}
}

// NewDefaultRegistry returns a registry knowing version 1, with
// decompressed payloads capped at maxPayloadBytes (<= 0 means the default).
func NewDefaultRegistry(maxPayloadBytes int64) *Registry {
	r := NewRegistry()
	r.Register(VersionV1, NewGzipBase64(maxPayloadBytes))
	return r
}

// Register binds a format to a version, replacing any previous binding.
func (r *Registry) Register(version string, f Format) {
	r.formats[version] = f
}

// Lookup returns the format bound to version.
func (r *Registry) Lookup(version string) (Format, bool) {
	f, ok := r.formats[version]
	return f, ok
}

// Versions lists the registered versions in ascending order.
func (r *Registry) Versions() []string {
	versions := make([]string, 0, len(r.formats))
	for v := range r.formats {
		versions = append(versions, v)
	}
	sort.Strings(versions)
	return versions
}

// Encode wraps payload with the format registered for version.
func (r *Registry) Encode(payload, version string) (string, error) {
	f, ok := r.Lookup(version)
	if !ok {
		return "", domainErrors.UnsupportedVersion(version)
	}
	data, err := f.Encode(payload)
	if err != nil {
		return "", err
	}
	if data == "" {
		return "", domainErrors.InvalidArgument("payload", "encoder produced no data")
	}
	return Prefix + separator + version + separator + data, nil
}

// Decode splits envelope into exactly three ':'-separated segments and
// unwraps the data segment with the format registered for its version.
// The format tag segment is not checked.
func (r *Registry) Decode(envelope string) (version, payload string, err error) {
	parts := strings.Split(envelope, separator)
	if len(parts) != 3 {
		return "", "", domainErrors.InvalidFormat("expected 3 ':'-separated segments")
	}
	version = parts[1]

	f, ok := r.Lookup(version)
	if !ok {
		return "", "", domainErrors.UnsupportedVersion(version)
	}
	payload, err = f.Decode(parts[2])
	if err != nil {
		return "", "", err
	}
	return version, payload, nil
}

var defaultRegistry = NewDefaultRegistry(DefaultMaxPayloadBytes)

// Encode wraps payload using the default registry.
func Encode(payload, version string) (string, error) {
	return defaultRegistry.Encode(payload, version)
}

// Decode unwraps envelope using the default registry.
func Decode(envelope string) (version, payload string, err error) {
	return defaultRegistry.Decode(envelope)
}
