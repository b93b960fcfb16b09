package entity

import (
	"errors"
	"fmt"
)

// AuthorizationHeader is the header BORICA multiplexes all client identity
// assertions onto.
const AuthorizationHeader = "rpToClientAuthorization"

// ErrNoCredential is returned when a zero-value Credential is used.
var ErrNoCredential = errors.New("credential: no identity method set")

// ErrAmbiguousCredential is returned by CredentialFromFields when the input
// populates zero or more than one identity method.
var ErrAmbiguousCredential = errors.New("credential: specify exactly one of personal_id, profile_id+otp, client_token, cert_id")

type credentialKind int

const (
	credentialNone credentialKind = iota
	credentialPersonalID
	credentialProfileOTP
	credentialClientToken
	credentialCertID
)

// Credential is one of the four mutually exclusive identity methods BORICA
// accepts on a signing request. The zero value carries no identity and is
// rejected when encoded; constructing via the typed constructors makes
// "exactly one" hold by construction.
type Credential struct {
	kind        credentialKind
	personalID  string
	profileID   string
	otp         string
	clientToken string
	certID      string
}

func PersonalIDCredential(personalID string) Credential {
	return Credential{kind: credentialPersonalID, personalID: personalID}
}

func ProfileOTPCredential(profileID, otp string) Credential {
	return Credential{kind: credentialProfileOTP, profileID: profileID, otp: otp}
}

func ClientTokenCredential(token string) Credential {
	return Credential{kind: credentialClientToken, clientToken: token}
}

func CertIDCredential(certID string) Credential {
	return Credential{kind: credentialCertID, certID: certID}
}

// IsZero reports whether no identity method is set.
func (c Credential) IsZero() bool {
	return c.kind == credentialNone
}

// AuthorizationValue encodes the credential into the rpToClientAuthorization
// header value. No escaping is applied; the remote protocol defines the
// grammar of each template.
func (c Credential) AuthorizationValue() (string, error) {
	switch c.kind {
	case credentialPersonalID:
		return fmt.Sprintf("personalId:%s", c.personalID), nil
	case credentialProfileOTP:
		return fmt.Sprintf("profileId:%s:%s", c.profileID, c.otp), nil
	case credentialClientToken:
		return fmt.Sprintf("clientToken:%s", c.clientToken), nil
	case credentialCertID:
		return fmt.Sprintf("certId:%s", c.certID), nil
	default:
		return "", ErrNoCredential
	}
}

// CredentialFromFields builds a Credential from loosely-typed external input
// (API request fields, config). Exactly one identity method must be
// populated; profile_id and otp count as a single method and must appear
// together. This runtime check exists only at this boundary.
func CredentialFromFields(personalID, profileID, otp, clientToken, certID string) (Credential, error) {
	count := 0
	if personalID != "" {
		count++
	}
	if profileID != "" || otp != "" {
		if profileID == "" || otp == "" {
			return Credential{}, ErrAmbiguousCredential
		}
		count++
	}
	if clientToken != "" {
		count++
	}
	if certID != "" {
		count++
	}
	if count != 1 {
		return Credential{}, ErrAmbiguousCredential
	}

	switch {
	case personalID != "":
		return PersonalIDCredential(personalID), nil
	case profileID != "":
		return ProfileOTPCredential(profileID, otp), nil
	case clientToken != "":
		return ClientTokenCredential(clientToken), nil
	default:
		return CertIDCredential(certID), nil
	}
}
