package setup

import (
	"strings"
	"unicode/utf8"

	"github.com/thushan/llmsource/internal/core/constants"
	"github.com/thushan/llmsource/internal/core/domain"
)

type MapperOptions struct {
	Description   string
	ContextTokens int
}

func DefaultMapperOptions() MapperOptions {
	return MapperOptions{
		Description:   constants.DefaultModelDescription,
		ContextTokens: constants.DefaultContextTokens,
	}
}

// Mapper turns remote model records into model descriptors
type Mapper struct {
	opts MapperOptions
}

func NewMapper(opts MapperOptions) *Mapper {
	defaults := DefaultMapperOptions()
	if opts.ContextTokens <= 0 {
		opts.ContextTokens = defaults.ContextTokens
	}
	if opts.Description == "" {
		opts.Description = defaults.Description
	}
	return &Mapper{opts: opts}
}

func (m *Mapper) ToLLM(model domain.RemoteModel, source *domain.Source) *domain.LLM {
	return &domain.LLM{
		ID:            ModelID(source.ID, model.ID),
		Label:         DeriveLabel(model.ID),
		Created:       0,
		Description:   m.opts.Description,
		Tags:          constants.DefaultModelTags(),
		ContextTokens: m.opts.ContextTokens,
		SourceID:      source.ID,
		Source:        source,
		Settings:      map[string]any{},
	}
}

// ToLLMs keeps the input ordering. Without a source nothing can be mapped.
func (m *Mapper) ToLLMs(models []domain.RemoteModel, source *domain.Source) []*domain.LLM {
	if source == nil {
		return []*domain.LLM{}
	}
	llms := make([]*domain.LLM, 0, len(models))
	for _, model := range models {
		llms = append(llms, m.ToLLM(model, source))
	}
	return llms
}

func ModelID(sourceID domain.SourceID, remoteID string) string {
	return string(sourceID) + "-" + remoteID
}

// DeriveLabel strips the first "ggml-" and ".bin" tokens, turns every hyphen
// into a space and upper-cases the first character of the whole label only,
// "ggml-my-model.bin" becomes "My model".
func DeriveLabel(remoteID string) string {
	label := strings.Replace(remoteID, constants.ModelFilePrefix, "", 1)
	label = strings.Replace(label, constants.ModelFileExtension, "", 1)
	label = strings.ReplaceAll(label, "-", " ")

	if label == "" {
		return label
	}

	first, size := utf8.DecodeRuneInString(label)
	return strings.ToUpper(string(first)) + label[size:]
}
