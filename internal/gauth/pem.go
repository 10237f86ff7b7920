package gauth

import (
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"fmt"
	"regexp"
	"strings"
)

var armorMarker = regexp.MustCompile(`-----(BEGIN|END)[^-]*-----`)

// NormalizeKey turns literal "\n" sequences into real line breaks. Keys pasted
// into environment variables usually arrive in that form.
func NormalizeKey(text string) string {
	return strings.TrimSpace(strings.ReplaceAll(text, `\n`, "\n"))
}

// DecodePEM strips the PEM armor from text and returns the decoded body.
// When the armor is not on lines of its own, the markers are cut out and
// the rest is decoded as a bare base64 body.
func DecodePEM(text string) ([]byte, error) {
	text = NormalizeKey(text)
	if text == "" {
		return nil, fmt.Errorf("%w: empty key", ErrMalformedKey)
	}

	if block, _ := pem.Decode([]byte(text)); block != nil {
		return block.Bytes, nil
	}

	body := strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', ' ', '\t':
			return -1
		}
		return r
	}, armorMarker.ReplaceAllString(text, ""))
	der, err := base64.StdEncoding.DecodeString(body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedKey, err)
	}
	return der, nil
}

// ParsePrivateKey interprets der as a PKCS#8 RSA private key. PKCS#1 is
// accepted as a fallback.
func ParsePrivateKey(der []byte) (*rsa.PrivateKey, error) {
	if len(der) == 0 {
		return nil, fmt.Errorf("%w: no key bytes", ErrMalformedKey)
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		rsaKey, ok := key.(*rsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: private key is not RSA", ErrMalformedKey)
		}
		return rsaKey, nil
	}
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	return nil, fmt.Errorf("%w: unsupported private key format", ErrMalformedKey)
}
