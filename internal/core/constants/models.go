package constants

const (
	// DefaultContextTokens is applied to every discovered model, servers
	// don't report a context window through /v1/models
	DefaultContextTokens = 4096

	DefaultModelDescription = "Local model"

	TagStream = "stream"
	TagChat   = "chat"

	// Model file naming tokens stripped when deriving labels
	ModelFilePrefix    = "ggml-"
	ModelFileExtension = ".bin"

	ModelObjectType = "model"

	ModelsPath = "/v1/models"
)

// DefaultModelTags returns a fresh copy so callers can't mutate the shared set
func DefaultModelTags() []string {
	return []string{TagStream, TagChat}
}
