package gateways

import (
	"context"
	"fmt"

	"github.com/ochairo/unipkg/internal/domain/entities"
	"github.com/ochairo/unipkg/internal/domain/interfaces/gateways"
)

// compositeResolver dispatches resolution to the strategy registered for an ecosystem
type compositeResolver struct {
	resolvers map[entities.Ecosystem]gateways.ArtifactResolver
}

// NewCompositeResolver creates a resolver backed by the pip and npm strategies
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewCompositeResolver(pip, npm gateways.ArtifactResolver) *compositeResolver {
	return NewCompositeResolverWithDeps(map[entities.Ecosystem]gateways.ArtifactResolver{
		entities.EcosystemPip: pip,
		entities.EcosystemNPM: npm,
	})
}

// NewCompositeResolverWithDeps creates a composite resolver from an explicit strategy table
//
//nolint:revive // unexported-return: Intentionally returns concrete type for testability
func NewCompositeResolverWithDeps(resolvers map[entities.Ecosystem]gateways.ArtifactResolver) *compositeResolver {
	return &compositeResolver{resolvers: resolvers}
}

// For returns the resolver bound to ecosystem
func (c *compositeResolver) For(ecosystem entities.Ecosystem) (gateways.ArtifactResolver, error) {
	r, ok := c.resolvers[ecosystem]
	if !ok || r == nil {
		return nil, fmt.Errorf("no artifact resolver for ecosystem %q", ecosystem)
	}
	return r, nil
}

// ResolveReference resolves ref with the strategy for its ecosystem
func (c *compositeResolver) ResolveReference(ctx context.Context, ref entities.PackageReference) (*entities.ArtifactHandle, error) {
	r, err := c.For(ref.Ecosystem)
	if err != nil {
		return nil, &entities.ResolutionError{Ref: ref, Reason: err}
	}
	return r.Resolve(ctx, ref.Name)
}
