package credentials

import "errors"

var (
	// ErrAccessDenied is returned when the secret store refuses access to the configured secret
	ErrAccessDenied = errors.New("access denied to secret")
	// ErrSecretStore is returned for every other failure to obtain the secret
	ErrSecretStore = errors.New("could not retrieve secret")
)
