package ports

import "context"

// GenerateInput is the request sent to the hosted generative model. The model
// is treated as an opaque text-completion service: no contract beyond
// "returns natural-language text given these inputs".
type GenerateInput struct {
	Instruction  string
	AudienceHint string
	ImageData    []byte // optional
	ImageMIME    string // required when ImageData is set
	Auxiliary    string // optional supplementary text
}

// ModelClient is the boundary to the external generative model.
type ModelClient interface {
	Generate(ctx context.Context, in GenerateInput) (string, error)
	// ModelName reports the configured model identifier, for audit records.
	ModelName() string
}
