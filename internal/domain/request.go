package domain

// ModelRequest is a fully assembled request to the generative model.
// Instructions is the fixed, trusted channel: it states the task and the
// output contract and is never parameterized by user content. Payload is
// the sole untrusted channel, a single JSON object carrying the diff and
// retrieved context.
type ModelRequest struct {
	Instructions    string
	Payload         string
	Temperature     float32
	MaxOutputTokens int
}
