package gauth

import (
	"errors"
	"fmt"
)

// ErrMalformedKey is returned when key material cannot be used by the RSA signer.
var ErrMalformedKey = errors.New("malformed private key")

// SigningError reports that an assertion could not be built or signed.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("sign assertion: %v", e.Err)
}

func (e *SigningError) Unwrap() error { return e.Err }

// TokenExchangeError reports a rejected or unusable reply from the token endpoint.
type TokenExchangeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token exchange failed: status=%d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("token exchange failed: status=%d body=%s", e.StatusCode, e.Body)
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }
