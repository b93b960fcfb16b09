package entity

import "encoding/json"

// Remote identification shapes. BORICA's identification API is loosely
// specified; the structs below carry the documented fields and results are
// kept as raw JSON where the schema is open-ended.

// WebSessionRequest starts a web identification session.
type WebSessionRequest struct {
	RequestCallbackURL   string `json:"requestCallbackUrl"`
	IdentificationReason string `json:"identificationReason"`
}

type WebSessionResponse struct {
	WebSessionID string      `json:"webSessionId"`
	ResultID     json.Number `json:"resultId"`
}

// RegistrationRequest creates a registration session for an OTC
// identification tied to an existing web session.
type RegistrationRequest struct {
	CancelURL          string                 `json:"cancelUrl"`
	DeviceFingerprint  map[string]interface{} `json:"deviceFingerprint"`
	ExternalRef        string                 `json:"externalRef"`
	SuccessURL         string                 `json:"successUrl"`
	UserLanguage       Language               `json:"userLanguage"`
	VerifyEmailAddress bool                   `json:"verifyEmailAddress"`
	VerifyPhoneNumber  bool                   `json:"verifyPhoneNumber"`
	ShowGtcGdp         bool                   `json:"showGtcGdp"`
	ShowMainInfo       bool                   `json:"showMainInfo"`
}

// ApplyDefaults matches the API's documented defaults for omitted fields.
func (r *RegistrationRequest) ApplyDefaults() {
	if r.UserLanguage == "" {
		r.UserLanguage = LanguageBG
	}
	if r.DeviceFingerprint == nil {
		r.DeviceFingerprint = map[string]interface{}{}
	}
}

type RegistrationResponse struct {
	SessionID string `json:"sessionId"`
}

// WebResultQuery addresses the result of a web identification or signing
// session. OnlyMetadata, when set, is appended as a trailing path segment.
type WebResultQuery struct {
	ResultID     string
	ProcessState string
	SessionID    string
	OnlyMetadata *bool
}

// OTCSignRequest begins an OTC signing session for a previously identified
// client. Document descriptors are passed through untyped.
type OTCSignRequest struct {
	Identificator              string                   `json:"identificator"`
	SignSessionID              string                   `json:"signSessionId"`
	DocumentsForSign           []map[string]interface{} `json:"documentsForSign"`
	SendSignedDocumentsByEmail bool                     `json:"sendSignedDocumentsByEmail"`
	SuccessURL                 string                   `json:"successUrl"`
	CancelURL                  string                   `json:"cancelUrl"`
}

type OTCSignResponse struct {
	SignSessionID string `json:"signSessionId,omitempty"`
	RedirectURL   string `json:"redirectUrl,omitempty"`
}
