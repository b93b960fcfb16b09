package entity

// AuthRequest is the body for POST /auth. The returned client token can be
// used as the identity method on subsequent signing requests.
type AuthRequest struct {
	ProfileID string `json:"profileId"`
	OTP       string `json:"otp"`
}

type AuthData struct {
	ClientToken string `json:"clientToken"`
}

type AuthResponse struct {
	Data         AuthData `json:"data"`
	ResponseCode string   `json:"responseCode"`
	Code         string   `json:"code"`
	Message      string   `json:"message"`
}

// CertificateByIdentityData is returned for GET /cert/identity/{type}/{value}.
type CertificateByIdentityData struct {
	EncodedCert string   `json:"encodedCert"`
	CertReqID   int      `json:"certReqId"`
	Devices     []string `json:"devices"`
}

type CertificateByIdentityResponse struct {
	Data         CertificateByIdentityData `json:"data"`
	ResponseCode string                    `json:"responseCode"`
	Code         string                    `json:"code"`
	Message      string                    `json:"message"`
}

// CertificateByProfileData is returned for GET /cert/{profileId}.
type CertificateByProfileData struct {
	EncodedCert string `json:"encodedCert"`
}

type CertificateByProfileResponse struct {
	Data         CertificateByProfileData `json:"data"`
	ResponseCode string                   `json:"responseCode"`
	Code         string                   `json:"code"`
	Message      string                   `json:"message"`
}
