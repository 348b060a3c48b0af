package container

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ReleaseOptions configures the cd tag-and-push flow.
type ReleaseOptions struct {
	// Engine drives the container CLI.
	Engine *Engine

	// Image is the bare image name (e.g. "app").
	Image string

	// SourceTag is the tag of the most recently built image ("latest").
	SourceTag string

	// Version is the release tag to apply.
	Version string

	// Registry is the registry endpoint. Empty means the push step is
	// skipped with a warning rather than failed.
	Registry string
}

// ReleaseResult reports what the release flow did.
type ReleaseResult struct {
	// TaggedRef is the local versioned reference (e.g. "app:1.2.3").
	TaggedRef string `json:"tagged_ref"`

	// Pushed is true when the image was pushed to a registry.
	Pushed bool `json:"pushed"`

	// PushedRef is the registry-qualified reference that was pushed, empty
	// when the push was skipped.
	PushedRef string `json:"pushed_ref,omitempty"`
}

// Release tags the most recently built image with the release version and,
// when a registry endpoint is configured, retags and pushes it there.
// A missing registry endpoint skips the push; it is not an error.
func Release(ctx context.Context, opts ReleaseOptions) (*ReleaseResult, error) {
	log := zerolog.Ctx(ctx)

	sourceRef := fmt.Sprintf("%s:%s", opts.Image, opts.SourceTag)
	taggedRef := fmt.Sprintf("%s:%s", opts.Image, opts.Version)

	if err := opts.Engine.Tag(ctx, sourceRef, taggedRef); err != nil {
		return nil, err
	}
	log.Info().Str("ref", taggedRef).Msg("tagged image")

	result := &ReleaseResult{TaggedRef: taggedRef}

	if opts.Registry == "" {
		log.Warn().Msg("no registry endpoint configured, skipping push")
		return result, nil
	}

	pushedRef := fmt.Sprintf("%s/%s", opts.Registry, taggedRef)
	if err := opts.Engine.Tag(ctx, taggedRef, pushedRef); err != nil {
		return nil, err
	}
	if err := opts.Engine.Push(ctx, pushedRef); err != nil {
		return nil, err
	}

	log.Info().Str("ref", pushedRef).Msg("pushed image")
	result.Pushed = true
	result.PushedRef = pushedRef
	return result, nil
}
