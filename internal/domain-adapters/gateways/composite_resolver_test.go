package gateways

import (
	"context"
	"errors"
	"testing"

	"github.com/ochairo/unipkg/internal/domain/entities"
)

// stubResolver records the names it was asked for
type stubResolver struct {
	ecosystem entities.Ecosystem
	names     []string
}

func (s *stubResolver) Resolve(_ context.Context, name string) (*entities.ArtifactHandle, error) {
	s.names = append(s.names, name)
	return entities.NewArtifactHandle("/tmp/"+name, s.ecosystem, "", "", ""), nil
}

func TestCompositeResolver_Dispatch(t *testing.T) {
	pip := &stubResolver{ecosystem: entities.EcosystemPip}
	npm := &stubResolver{ecosystem: entities.EcosystemNPM}
	c := NewCompositeResolver(pip, npm)

	tests := []struct {
		ref  entities.PackageReference
		want *stubResolver
	}{
		{ref: entities.PackageReference{Name: "requests", Ecosystem: entities.EcosystemPip}, want: pip},
		{ref: entities.PackageReference{Name: "left-pad", Ecosystem: entities.EcosystemNPM}, want: npm},
	}

	for _, tt := range tests {
		handle, err := c.ResolveReference(context.Background(), tt.ref)
		if err != nil {
			t.Fatalf("ResolveReference(%s) error = %v", tt.ref, err)
		}
		if handle.Ecosystem != tt.ref.Ecosystem {
			t.Errorf("ResolveReference(%s) used the %s resolver", tt.ref, handle.Ecosystem)
		}
		if len(tt.want.names) != 1 || tt.want.names[0] != tt.ref.Name {
			t.Errorf("resolver saw %v, want [%s]", tt.want.names, tt.ref.Name)
		}
	}
}

func TestCompositeResolver_UnknownEcosystem(t *testing.T) {
	c := NewCompositeResolverWithDeps(nil)

	_, err := c.ResolveReference(context.Background(), entities.PackageReference{Name: "x", Ecosystem: "cargo"})
	var resErr *entities.ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("ResolveReference() error = %v, want *ResolutionError", err)
	}
}
