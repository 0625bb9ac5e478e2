package transfer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/skip2/go-qrcode"

	"github.com/albapepper/scoracle-scout/internal/match"
)

// ErrInvalidPayload is returned when scanned text is not a record.
var ErrInvalidPayload = errors.New("invalid QR payload")

// QRSize is the default PNG edge length in pixels.
const QRSize = 256

// EncodePayload serializes a record as compact JSON for a QR code.
func EncodePayload(r match.Record) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}
	return data, nil
}

// DecodePayload parses scanned text. The payload must be a JSON object with
// a non-empty "id" and a "match" object; other sections may be missing.
func DecodePayload(data []byte) (match.Record, error) {
	data = bytes.TrimSpace(data)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return match.Record{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	m, ok := fields["match"]
	if !ok || !bytes.HasPrefix(bytes.TrimSpace(m), []byte("{")) {
		return match.Record{}, fmt.Errorf("%w: missing match", ErrInvalidPayload)
	}

	var r match.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return match.Record{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if r.ID == "" {
		return match.Record{}, fmt.Errorf("%w: missing id", ErrInvalidPayload)
	}
	return r, nil
}

// QRCode renders the record payload as a PNG. size <= 0 uses QRSize.
func QRCode(r match.Record, size int) ([]byte, error) {
	if size <= 0 {
		size = QRSize
	}
	payload, err := EncodePayload(r)
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("render qr: %w", err)
	}
	return png, nil
}
