package scene

import (
	"crypto/sha256"
	"encoding/hex"
)

// ImageRef is an encoded image carried by the edit state. ID is the
// SHA-256 of Data, so equal bytes share one decode in the loader cache.
//
// Data must not be modified after the reference is created.
type ImageRef struct {
	ID   string `yaml:"id" json:"id"`
	MIME string `yaml:"mime" json:"mime"`
	Data []byte `yaml:"-" json:"-"`
}

// NewImageRef wraps encoded image bytes.
func NewImageRef(mime string, data []byte) ImageRef {
	sum := sha256.Sum256(data)
	return ImageRef{ID: hex.EncodeToString(sum[:]), MIME: mime, Data: data}
}

// IsZero reports whether r references no image.
func (r ImageRef) IsZero() bool {
	return r.ID == ""
}
