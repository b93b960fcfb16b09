package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorizationValue(t *testing.T) {
	tests := []struct {
		name string
		cred Credential
		want string
	}{
		{"personal id", PersonalIDCredential("8001010000"), "personalId:8001010000"},
		{"profile with otp", ProfileOTPCredential("p1", "123456"), "profileId:p1:123456"},
		{"client token", ClientTokenCredential("token-xyz"), "clientToken:token-xyz"},
		{"cert id", CertIDCredential("cert-42"), "certId:cert-42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.cred.AuthorizationValue()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthorizationValueZero(t *testing.T) {
	var cred Credential

	assert.True(t, cred.IsZero())

	_, err := cred.AuthorizationValue()
	assert.ErrorIs(t, err, ErrNoCredential)
}

func TestIsZero(t *testing.T) {
	assert.False(t, PersonalIDCredential("8001010000").IsZero())
	assert.False(t, ProfileOTPCredential("p1", "123456").IsZero())
	assert.False(t, ClientTokenCredential("t").IsZero())
	assert.False(t, CertIDCredential("c").IsZero())
}

func TestCredentialFromFields(t *testing.T) {
	tests := []struct {
		name       string
		personalID string
		profileID  string
		otp        string
		token      string
		certID     string
		want       string
		wantErr    error
	}{
		{name: "personal id only", personalID: "8001010000", want: "personalId:8001010000"},
		{name: "profile and otp", profileID: "p1", otp: "123456", want: "profileId:p1:123456"},
		{name: "client token only", token: "token-xyz", want: "clientToken:token-xyz"},
		{name: "cert id only", certID: "cert-42", want: "certId:cert-42"},
		{name: "nothing set", wantErr: ErrAmbiguousCredential},
		{name: "profile without otp", profileID: "p1", wantErr: ErrAmbiguousCredential},
		{name: "otp without profile", otp: "123456", wantErr: ErrAmbiguousCredential},
		{name: "two methods", personalID: "8001010000", token: "token-xyz", wantErr: ErrAmbiguousCredential},
		{name: "token and cert id", token: "token-xyz", certID: "cert-42", wantErr: ErrAmbiguousCredential},
		{name: "all methods", personalID: "x", profileID: "p", otp: "1", token: "t", certID: "c", wantErr: ErrAmbiguousCredential},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cred, err := CredentialFromFields(tt.personalID, tt.profileID, tt.otp, tt.token, tt.certID)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.True(t, cred.IsZero())
				return
			}
			require.NoError(t, err)
			got, err := cred.AuthorizationValue()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
