package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignRequestValidate(t *testing.T) {
	req := &SignRequest{
		Contents: []SignContent{
			{
				Data:          "aGVsbG8=",
				FileName:      "contract.pdf",
				ContentFormat: ContentFormatBinaryBase64,
			},
		},
	}

	require.NoError(t, req.Validate())

	assert.Equal(t, PayerRelyingParty, req.Payer)
	assert.Equal(t, HashAlgorithmSHA256, req.Contents[0].HashAlgorithm)
	assert.Equal(t, SignatureTypeXAdESLTAEnveloping, req.Contents[0].SignatureType)
}

func TestSignRequestValidateKeepsExplicitValues(t *testing.T) {
	req := &SignRequest{
		Payer: PayerClient,
		Contents: []SignContent{
			{
				Data:          "aGVsbG8=",
				FileName:      "contract.pdf",
				HashAlgorithm: HashAlgorithmSHA512,
				SignatureType: SignatureTypeSignature,
			},
		},
	}

	require.NoError(t, req.Validate())

	assert.Equal(t, PayerClient, req.Payer)
	assert.Equal(t, HashAlgorithmSHA512, req.Contents[0].HashAlgorithm)
	assert.Equal(t, SignatureTypeSignature, req.Contents[0].SignatureType)
}

func TestSignRequestValidateNoContents(t *testing.T) {
	req := &SignRequest{}
	assert.ErrorIs(t, req.Validate(), ErrNoContents)
}

func TestSignStatusCompleted(t *testing.T) {
	assert.True(t, (&SignStatusResponse{Code: CodeCompleted}).Completed())
	assert.False(t, (&SignStatusResponse{Code: "IN_PROGRESS"}).Completed())
	assert.False(t, (&SignStatusResponse{}).Completed())
}

func TestResultFromStatus(t *testing.T) {
	status := &SignStatusResponse{
		Code: CodeCompleted,
		Data: &SignStatusData{
			Cert: "MIIB...",
			Signatures: []SignatureItem{
				{Status: SignatureStatusSigned, Signature: "content-1"},
			},
		},
	}

	result := ResultFromStatus(status)

	assert.Equal(t, "MIIB...", result.Cert)
	require.Len(t, result.Signatures, 1)
	assert.Equal(t, "content-1", result.Signatures[0].Signature)
}

func TestResultFromStatusMinimalEnvelope(t *testing.T) {
	result := ResultFromStatus(&SignStatusResponse{Code: CodeCompleted})

	assert.NotNil(t, result.Signatures)
	assert.Empty(t, result.Signatures)
	assert.Empty(t, result.Cert)
}

func TestQrRequestValidate(t *testing.T) {
	req := &QrRequest{
		Request: QrInnerRequest{
			Content: SignContent{Data: "aGVsbG8=", FileName: "doc.pdf"},
		},
	}

	require.NoError(t, req.Validate())

	assert.Equal(t, PayerRelyingParty, req.Request.Payer)
	assert.Equal(t, HashAlgorithmSHA256, req.Request.Content.HashAlgorithm)
}
