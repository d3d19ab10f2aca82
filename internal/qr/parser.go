package qr

import (
	"strings"
)

/*
Formato esperado de un QR de cliente:

	CLIENTE=Juan Perez|TEL=0999999999|DIR=Av. Central y Loja

Claves reconocidas: CLIENTE (nombre), TEL (teléfono), DIR (dirección).
*/

const (
	keyClient  = "CLIENTE"
	keyPhone   = "TEL"
	keyAddress = "DIR"

	msgEmptyContent  = "El QR está vacío"
	msgMissingClient = "El QR no contiene el campo CLIENTE.\n" +
		"Formato esperado: CLIENTE=Nombre|TEL=0999|DIR=Dirección"
)

// QRData holds the fields decoded from a client QR payload. ErrorMessage is
// set only when IsValid is false.
type QRData struct {
	ClientName    string
	ClientPhone   string
	ClientAddress string
	IsValid       bool
	ErrorMessage  string
}

// Parse decodes a KEY=value payload joined by "|". Keys are matched
// case-insensitively, values may contain "=", unknown keys are ignored.
// The result is valid when CLIENTE carries a non-empty value.
func Parse(raw string) QRData {
	if strings.TrimSpace(raw) == "" {
		return QRData{ErrorMessage: msgEmptyContent}
	}

	fields := make(map[string]string)
	for _, part := range strings.Split(raw, "|") {
		eq := strings.Index(part, "=")
		// segments without "=" or starting with it are silently dropped
		if eq <= 0 {
			continue
		}
		key := strings.ToUpper(strings.TrimSpace(part[:eq]))
		fields[key] = strings.TrimSpace(part[eq+1:])
	}

	data := QRData{
		ClientName:    fields[keyClient],
		ClientPhone:   fields[keyPhone],
		ClientAddress: fields[keyAddress],
	}
	if data.ClientName == "" {
		data.ErrorMessage = msgMissingClient
		return data
	}
	data.IsValid = true
	return data
}

// LooksLikeClientQR is a cheap pre-check used before attempting a full
// Parse. Passing it does not guarantee the payload is valid.
func LooksLikeClientQR(raw string) bool {
	return strings.Contains(raw, keyClient+"=")
}
