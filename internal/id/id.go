package id

import "github.com/google/uuid"

// GenerateID returns a new random identifier for attempts and quiz sessions.
func GenerateID() string {
	return uuid.NewString()
}

// NewDeviceID returns an identifier for a freshly registered device.
// Device ids double as storage namespaces, so they carry a fixed prefix
// that can never collide with the shared "global" namespace.
func NewDeviceID() string {
	return "dev_" + uuid.NewString()
}
