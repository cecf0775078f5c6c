package secrets

// SecretProperties are the mutable attributes of a secret.
type SecretProperties struct {
	Enabled bool `json:"enabled"`
}

// SetSecretOptions are the optional parameters for set-secret calls.
// The client reads them during request composition and never retains them;
// a nil options pointer selects all defaults.
type SetSecretOptions struct {
	// Properties sets the secret's attributes. Absent from the request
	// payload when nil.
	Properties *SecretProperties

	// ContentType describes the secret value (e.g. "text/plain").
	ContentType string

	// Tags are free-form name/value metadata on the secret.
	Tags map[string]string
}

// setSecretRequest is the set-secret wire payload: the value is always
// present, optional fields appear only when set.
type setSecretRequest struct {
	Value       string            `json:"value"`
	ContentType string            `json:"contentType,omitempty"`
	Tags        map[string]string `json:"tags,omitempty"`
	Properties  *SecretProperties `json:"properties,omitempty"`
}

// Secret is a secret as returned by the service.
type Secret struct {
	// ID is the full secret identifier URL.
	ID string `json:"id"`
	// Name is the secret's name.
	Name string `json:"name"`
	// Version identifies this version of the secret.
	Version string `json:"version"`
	// Value is the secret value.
	Value string `json:"value"`
	// ContentType describes the secret value, when set.
	ContentType string `json:"contentType,omitempty"`
	// Tags are the secret's metadata tags, when set.
	Tags map[string]string `json:"tags,omitempty"`
	// Properties are the secret's attributes.
	Properties *SecretProperties `json:"properties,omitempty"`
}
