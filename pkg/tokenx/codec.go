package tokenx

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
)

// ParsedToken is the structured view of a compact token. Header and payload
// are decoded copies; mutating them never changes the raw segments, and the
// signing input always reflects exactly what was signed.
type ParsedToken struct {
	RawHeader    string
	RawPayload   string
	RawSignature string

	Header    map[string]any
	Payload   map[string]any
	Signature []byte

	// Version is the recognised token format version.
	Version int

	// KID is the signing key identifier from the header. Empty for the
	// legacy static format.
	KID string
}

// SigningInput returns the ASCII bytes the signature was computed over.
func (t *ParsedToken) SigningInput() []byte {
	return []byte(t.RawHeader + "." + t.RawPayload)
}

// Parse splits and decodes a compact token without doing any cryptographic
// work. It fails with ErrMalformed on structural problems and with
// ErrUnrecognizedHeader when the header isn't one of ours.
func Parse(raw string) (*ParsedToken, error) {
	parts := strings.Split(raw, ".")
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformed, len(parts))
	}

	headerJSON, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return nil, fmt.Errorf("%w: header segment: %v", ErrMalformed, err)
	}
	payloadJSON, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return nil, fmt.Errorf("%w: payload segment: %v", ErrMalformed, err)
	}
	signature, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		return nil, fmt.Errorf("%w: signature segment: %v", ErrMalformed, err)
	}

	var header map[string]any
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, fmt.Errorf("%w: header is not a JSON object", ErrMalformed)
	}
	var payload map[string]any
	if err := json.Unmarshal(payloadJSON, &payload); err != nil {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrMalformed)
	}

	version, kid, err := recognizeHeader(header)
	if err != nil {
		return nil, err
	}

	return &ParsedToken{
		RawHeader:    parts[0],
		RawPayload:   parts[1],
		RawSignature: parts[2],
		Header:       header,
		Payload:      payload,
		Signature:    signature,
		Version:      version,
		KID:          kid,
	}, nil
}

// Serialize is the strict inverse of Parse for structurally encodable
// header/payload pairs: Parse(Serialize(h, p, s)) yields back the same
// three components.
func Serialize(header, payload map[string]any, signature []byte) (string, error) {
	headerJSON, err := json.Marshal(header)
	if err != nil {
		return "", fmt.Errorf("tokenx: encode header: %w", err)
	}
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("tokenx: encode payload: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(headerJSON) +
		"." + base64.RawURLEncoding.EncodeToString(payloadJSON) +
		"." + base64.RawURLEncoding.EncodeToString(signature), nil
}
