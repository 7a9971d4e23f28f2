package embedding

import "context"

// Embedder defines the interface contract for embedding generation services.
// Implementations must return one vector per input text, in input order.
type Embedder interface {
	EmbedBatch(ctx context.Context, contents []string) ([][]float32, error)
	ModelName() string
}
