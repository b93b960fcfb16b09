package entity

import "errors"

// Field names follow the JSON casing of BORICA's signing API.

// ErrNoContents is returned when a sign request carries no content items.
var ErrNoContents = errors.New("sign request: at least one content item is required")

// SignaturePosition places a visual signature on a PDF page. ImageXAxis and
// ImageYAxis are the upper-left origin of the signature area; PageNumber is
// 1-based.
type SignaturePosition struct {
	ImageHeight int `json:"imageHeight"`
	ImageWidth  int `json:"imageWidth"`
	ImageXAxis  int `json:"imageXAxis"`
	ImageYAxis  int `json:"imageYAxis"`
	PageNumber  int `json:"pageNumber"`
}

// SignContent is a single item to be signed. Data must be base64 encoded for
// BINARY_BASE64 and DIGEST formats; for TEXT it holds the literal string.
type SignContent struct {
	ConfirmText          string             `json:"confirmText"`
	ContentFormat        ContentFormat      `json:"contentFormat"`
	Data                 string             `json:"data"`
	FileName             string             `json:"fileName"`
	HashAlgorithm        HashAlgorithm      `json:"hashAlgorithm"`
	PadesVisualSignature bool               `json:"padesVisualSignature"`
	SignaturePosition    *SignaturePosition `json:"signaturePosition,omitempty"`
	SignatureType        SignatureType      `json:"signatureType"`
	ToBeArchived         bool               `json:"toBeArchived"`
}

// ApplyDefaults fills in the hash algorithm and signature type the API
// assumes when the caller leaves them empty.
func (c *SignContent) ApplyDefaults() {
	if c.HashAlgorithm == "" {
		c.HashAlgorithm = HashAlgorithmSHA256
	}
	if c.SignatureType == "" {
		c.SignatureType = SignatureTypeXAdESLTAEnveloping
	}
}

// SignRequest is the body for POST /sign. The identity method travels in the
// rpToClientAuthorization header, not in this body.
type SignRequest struct {
	Contents               []SignContent `json:"contents"`
	RelyingPartyCallbackID string        `json:"relyingPartyCallbackId,omitempty"`
	CallbackURL            string        `json:"callbackURL,omitempty"`
	Payer                  Payer         `json:"payer"`
	IsLogin                bool          `json:"isLogin"`
}

// Validate checks the request invariants and applies per-content defaults.
func (r *SignRequest) Validate() error {
	if len(r.Contents) == 0 {
		return ErrNoContents
	}
	if r.Payer == "" {
		r.Payer = PayerRelyingParty
	}
	for i := range r.Contents {
		r.Contents[i].ApplyDefaults()
	}
	return nil
}

// SignAcceptedData is returned when a sign request is accepted. CallbackID is
// the correlation token for all subsequent status and content calls.
type SignAcceptedData struct {
	CallbackID string `json:"callbackId"`
	Validity   string `json:"validity"`
}

// SignAcceptedResponse is the envelope for POST /sign.
type SignAcceptedResponse struct {
	Data         SignAcceptedData `json:"data"`
	ResponseCode string           `json:"responseCode"`
	Code         string           `json:"code"`
	Message      string           `json:"message"`
}

// SignatureItem is the per-content result while polling. Signature holds a
// content reference once the item is signed.
type SignatureItem struct {
	Status        SignatureStatus `json:"status"`
	Signature     string          `json:"signature,omitempty"`
	SignatureType string          `json:"signatureType,omitempty"`
}

// SignStatusData is the nested payload of a status poll.
type SignStatusData struct {
	Cert       string          `json:"cert,omitempty"`
	Signatures []SignatureItem `json:"signatures"`
}

// SignStatusResponse is the envelope for GET /sign/{callbackId} and
// GET /sign/rpcallbackid/{rpCallbackId}. Every field is optional because a
// pending poll may return a minimal envelope; completion is signalled solely
// by Code equalling CodeCompleted.
type SignStatusResponse struct {
	Data         *SignStatusData `json:"data,omitempty"`
	ResponseCode string          `json:"responseCode,omitempty"`
	Code         string          `json:"code,omitempty"`
	Message      string          `json:"message,omitempty"`
}

// Completed reports whether this envelope is terminal.
func (r *SignStatusResponse) Completed() bool {
	return r.Code == CodeCompleted
}

// SignResult is the completed shape of a signing operation, produced by
// classifying a terminal SignStatusResponse. Unlike the raw envelope its
// signature list is never nil.
type SignResult struct {
	CallbackID string          `json:"callbackId,omitempty"`
	Cert       string          `json:"cert,omitempty"`
	Signatures []SignatureItem `json:"signatures"`
}

// ResultFromStatus collapses a terminal status envelope into a SignResult.
func ResultFromStatus(status *SignStatusResponse) *SignResult {
	res := &SignResult{Signatures: []SignatureItem{}}
	if status.Data != nil {
		res.Cert = status.Data.Cert
		if status.Data.Signatures != nil {
			res.Signatures = status.Data.Signatures
		}
	}
	return res
}

// SignCallback is the payload BORICA posts to the configured callbackURL
// when a signing operation progresses. Same envelope as a status poll, plus
// the correlation token.
type SignCallback struct {
	CallbackID string `json:"callbackId"`
	SignStatusResponse
}

// QrInnerRequest wraps the single content item of a QR-initiated signing.
type QrInnerRequest struct {
	Content                SignContent `json:"content"`
	RelyingPartyCallbackID string      `json:"relyingPartyCallbackId,omitempty"`
	CallbackURL            string      `json:"callbackURL,omitempty"`
	Payer                  Payer       `json:"payer"`
	IsLogin                bool        `json:"isLogin"`
}

// QrRequest is the body for POST /signviaqr. QrHeight and QrWidth control
// the size of the returned QR image; zero means server defaults.
type QrRequest struct {
	QrHeight int            `json:"qrHeight,omitempty"`
	QrWidth  int            `json:"qrWidth,omitempty"`
	Request  QrInnerRequest `json:"request"`
}

// Validate applies defaults to the wrapped content item.
func (r *QrRequest) Validate() error {
	if r.Request.Payer == "" {
		r.Request.Payer = PayerRelyingParty
	}
	r.Request.Content.ApplyDefaults()
	return nil
}

// QrAcceptedData is returned from /signviaqr on acceptance. QrImage is the
// base64 encoded image, QrPlain the plaintext QR payload.
type QrAcceptedData struct {
	CallbackID string `json:"callbackId"`
	QrImage    string `json:"qrImage,omitempty"`
	QrPlain    string `json:"qrPlain,omitempty"`
	Validity   string `json:"validity"`
}

// QrAcceptedResponse is the envelope for POST /signviaqr.
type QrAcceptedResponse struct {
	Data         QrAcceptedData `json:"data"`
	ResponseCode string         `json:"responseCode"`
	Code         string         `json:"code"`
	Message      string         `json:"message"`
}
