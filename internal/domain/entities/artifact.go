// Package entities defines core domain models and data structures.
package entities

import (
	"os"
	"sync"
)

// ArtifactOrigin records which resolution step produced an artifact
type ArtifactOrigin string

// Resolution steps that can produce an artifact
const (
	OriginPipDownload    ArtifactOrigin = "pip-download"
	OriginPipModule      ArtifactOrigin = "python-m-pip-download"
	OriginNPMViewTarball ArtifactOrigin = "npm-view-dist-tarball"
	OriginNPMLatest      ArtifactOrigin = "registry-latest"
	OriginNPMConstructed ArtifactOrigin = "constructed-tarball-url"
	OriginNPMPack        ArtifactOrigin = "npm-pack"
	OriginLocalFile      ArtifactOrigin = "local-file"
)

// ArtifactHandle is a downloaded artifact living in a private scratch directory.
// The handle owns the directory; Release removes it.
type ArtifactHandle struct {
	LocalPath string
	Ecosystem Ecosystem
	SourceURL string // empty when the artifact came from a CLI tool
	Origin    ArtifactOrigin

	scratchDir  string
	releaseOnce sync.Once
	releaseErr  error
}

// NewArtifactHandle binds a resolved file to the scratch directory that holds it
func NewArtifactHandle(localPath string, ecosystem Ecosystem, sourceURL string, origin ArtifactOrigin, scratchDir string) *ArtifactHandle {
	return &ArtifactHandle{
		LocalPath:  localPath,
		Ecosystem:  ecosystem,
		SourceURL:  sourceURL,
		Origin:     origin,
		scratchDir: scratchDir,
	}
}

// ScratchDir returns the directory removed by Release
func (h *ArtifactHandle) ScratchDir() string {
	if h == nil {
		return ""
	}
	return h.scratchDir
}

// Release removes the scratch directory and everything in it.
// Safe to call more than once and on a nil handle.
func (h *ArtifactHandle) Release() error {
	if h == nil {
		return nil
	}
	h.releaseOnce.Do(func() {
		if h.scratchDir != "" {
			h.releaseErr = os.RemoveAll(h.scratchDir)
		}
	})
	return h.releaseErr
}
