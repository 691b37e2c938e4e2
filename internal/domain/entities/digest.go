package entities

// DigestAlgorithm is the only hash used for reputation lookups
const DigestAlgorithm = "sha256"

// ContentDigest is the content hash of an artifact
type ContentDigest struct {
	Algorithm string
	Hex       string
}

// NewSHA256Digest wraps a lowercase hex SHA-256 sum
func NewSHA256Digest(hex string) ContentDigest {
	return ContentDigest{Algorithm: DigestAlgorithm, Hex: hex}
}

// Valid reports whether the digest is a 64-char lowercase hex SHA-256
func (d ContentDigest) Valid() bool {
	if d.Algorithm != DigestAlgorithm || len(d.Hex) != 64 {
		return false
	}
	for _, c := range d.Hex {
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}

// IsZero reports whether no digest was computed
func (d ContentDigest) IsZero() bool {
	return d.Hex == ""
}

func (d ContentDigest) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Algorithm + ":" + d.Hex
}
