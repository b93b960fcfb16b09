package entity

// The string constants below mirror the values defined by BORICA's CQES
// specification. Typed string aliases keep magic strings out of consumer
// code while still marshalling directly into JSON payloads.

// ContentFormat describes how SignContent.Data is encoded.
type ContentFormat string

const (
	ContentFormatDigest       ContentFormat = "DIGEST"
	ContentFormatBinaryBase64 ContentFormat = "BINARY_BASE64"
	ContentFormatText         ContentFormat = "TEXT"
)

// SignatureType identifiers supported by the signing endpoint.
type SignatureType string

const (
	SignatureTypeSignature          SignatureType = "SIGNATURE"
	SignatureTypeXAdESLTAEnveloping SignatureType = "XADES_BASELINE_LTA_ENVELOPING"
)

// HashAlgorithm for digest calculations.
type HashAlgorithm string

const (
	HashAlgorithmSHA256 HashAlgorithm = "SHA256"
	HashAlgorithmSHA512 HashAlgorithm = "SHA512"
)

// Payer indicates who pays for the signing operation.
type Payer string

const (
	PayerClient       Payer = "CLIENT"
	PayerRelyingParty Payer = "RELYING_PARTY"
)

// IdentifierType for certificate-by-identity queries.
type IdentifierType string

const (
	IdentifierTypeEGN   IdentifierType = "EGN"
	IdentifierTypeLNC   IdentifierType = "LNC"
	IdentifierTypeEmail IdentifierType = "EMAIL"
	IdentifierTypePhone IdentifierType = "PHONE"
)

// Language codes accepted by the API for prompts and messages.
type Language string

const (
	LanguageBG Language = "bg"
	LanguageEN Language = "en"
)

// SignatureStatus is the per-content state reported while polling.
type SignatureStatus string

const (
	SignatureStatusInProgress SignatureStatus = "IN_PROGRESS"
	SignatureStatusSigned     SignatureStatus = "SIGNED"
)

// ReportType for QLTPS evidence reports.
type ReportType string

const (
	ReportTypeSimple   ReportType = "SIMPLE"
	ReportTypeDetailed ReportType = "DETAILED"
)

// CodeCompleted is the short code BORICA sets on the status envelope once a
// signing operation has finished. The poll loop terminates on this value
// alone; per-signature statuses are informational.
const CodeCompleted = "COMPLETED"
