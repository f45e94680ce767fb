package generator

import (
	"context"

	"codeberg.org/svgforge/server/internal/policy"
)

// Generator produces an artifact for an already-charged generation request.
// The credit engine has made its decision by the time this runs; a failure
// here does not refund the deduction.
type Generator interface {
	Generate(ctx context.Context, req Request) (*Artifact, error)
}

// Request describes one generation job
type Request struct {
	Type   policy.GenerationType `json:"type"`
	Prompt string                `json:"prompt"`
	Style  string                `json:"style,omitempty"`
	Size   string                `json:"size,omitempty"`
}

// Artifact is the finished output hosted by the generation provider
type Artifact struct {
	URL   string `json:"url"`
	Model string `json:"model"`
}
