package entities

import (
	"strings"
	"testing"
)

func TestContentDigest_Valid(t *testing.T) {
	tests := []struct {
		name   string
		digest ContentDigest
		want   bool
	}{
		{name: "empty input sum", digest: NewSHA256Digest("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"), want: true},
		{name: "uppercase", digest: NewSHA256Digest(strings.ToUpper("e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"))},
		{name: "short", digest: NewSHA256Digest("e3b0c442")},
		{name: "not hex", digest: NewSHA256Digest(strings.Repeat("g", 64))},
		{name: "wrong algorithm", digest: ContentDigest{Algorithm: "sha1", Hex: strings.Repeat("a", 64)}},
		{name: "zero", digest: ContentDigest{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.digest.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContentDigest_String(t *testing.T) {
	if s := (ContentDigest{}).String(); s != "" {
		t.Errorf("zero digest String() = %q", s)
	}
	d := NewSHA256Digest(strings.Repeat("ab", 32))
	if s := d.String(); s != "sha256:"+strings.Repeat("ab", 32) {
		t.Errorf("String() = %q", s)
	}
}
