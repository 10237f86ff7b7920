package gauth

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/yanxingzhi/event-form-multi/internal/util"
)

const (
	// TokenURL is the Google OAuth2 token endpoint. It is always the
	// assertion audience, even when the exchange is sent elsewhere.
	TokenURL = "https://oauth2.googleapis.com/token"

	ScopeSpreadsheetsReadOnly = "https://www.googleapis.com/auth/spreadsheets.readonly"
	ScopeSpreadsheets         = "https://www.googleapis.com/auth/spreadsheets"

	// AssertionLifetime is the exp - iat distance of every assertion.
	AssertionLifetime = 3600 * time.Second
)

// Credential identifies a service account. PrivateKey holds raw PKCS#8 bytes.
type Credential struct {
	IssuerEmail string
	PrivateKey  []byte
}

// NewCredential decodes pemText into a Credential. The key bytes are not
// validated until they are used for signing.
func NewCredential(issuerEmail, pemText string) (Credential, error) {
	der, err := DecodePEM(pemText)
	if err != nil {
		return Credential{}, err
	}
	return Credential{IssuerEmail: strings.TrimSpace(issuerEmail), PrivateKey: der}, nil
}

// Header is the JOSE header of an assertion.
type Header struct {
	Alg string `json:"alg"`
	Typ string `json:"typ"`
}

// ClaimSet holds the claims Google expects in a service-account assertion.
type ClaimSet struct {
	Iss   string `json:"iss"`
	Scope string `json:"scope"`
	Aud   string `json:"aud"`
	Exp   int64  `json:"exp"`
	Iat   int64  `json:"iat"`
}

// BuildAssertion returns the compact serialization of an RS256-signed JWT
// asserting cred for scope.
func BuildAssertion(cred Credential, scope, audience string, issuedAt time.Time) (string, error) {
	key, err := ParsePrivateKey(cred.PrivateKey)
	if err != nil {
		return "", &SigningError{Err: err}
	}

	headerJSON, err := json.Marshal(Header{Alg: "RS256", Typ: "JWT"})
	if err != nil {
		return "", &SigningError{Err: err}
	}

	iat := issuedAt.Unix()
	claimsJSON, err := json.Marshal(ClaimSet{
		Iss:   cred.IssuerEmail,
		Scope: scope,
		Aud:   audience,
		Exp:   iat + int64(AssertionLifetime/time.Second),
		Iat:   iat,
	})
	if err != nil {
		return "", &SigningError{Err: err}
	}

	signingInput := util.Base64URL(headerJSON) + "." + util.Base64URL(claimsJSON)

	digest := sha256.Sum256([]byte(signingInput))
	signature, err := rsa.SignPKCS1v15(rand.Reader, key, crypto.SHA256, digest[:])
	if err != nil {
		return "", &SigningError{Err: fmt.Errorf("rsa: %w", err)}
	}

	return signingInput + "." + util.Base64URL(signature), nil
}
