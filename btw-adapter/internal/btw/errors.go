package btw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// VendorError is a non-2xx answer from the BT Wholesale API gateway.
type VendorError struct {
	StatusCode int
	Code       string
	Reason     string
	Message    string
}

func (e *VendorError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Reason
	}
	if e.Code != "" {
		return fmt.Sprintf("btw returned %d (code %s): %s", e.StatusCode, e.Code, msg)
	}
	return fmt.Sprintf("btw returned %d: %s", e.StatusCode, msg)
}

// Unauthorized reports whether the access token was rejected.
func (e *VendorError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// parseVendorError decodes the gateway or TMF error body. Unparseable bodies are kept
// verbatim as the message.
func parseVendorError(status int, body []byte) *VendorError {
	ve := &VendorError{StatusCode: status}

	var resp ErrorResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		ve.Message = strings.TrimSpace(string(body))
		return ve
	}
	ve.Code = strings.Trim(string(bytes.TrimSpace(resp.Code)), `"`)
	if ve.Code == "null" {
		ve.Code = ""
	}
	ve.Reason = resp.Reason
	ve.Message = resp.Message
	if ve.Message == "" && ve.Reason == "" {
		ve.Message = http.StatusText(status)
	}
	return ve
}
