package lister

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/thushan/llmsource/internal/core/constants"
	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/internal/logger"
)

const (
	DefaultModelsFieldPath = "data"
	FormatJSON             = "json"
)

// ResponseParser reads OpenAI compatible model listings
type ResponseParser struct {
	logger          *logger.StyledLogger
	modelsFieldPath string
}

func NewResponseParser(logger *logger.StyledLogger) *ResponseParser {
	return &ResponseParser{
		logger:          logger,
		modelsFieldPath: DefaultModelsFieldPath,
	}
}

// ParseModelsResponse keeps the server's ordering, entries without an id are skipped
func (p *ResponseParser) ParseModelsResponse(body []byte) ([]domain.RemoteModel, error) {
	if len(body) == 0 {
		return []domain.RemoteModel{}, nil
	}

	if !gjson.ValidBytes(body) {
		return nil, &ParseError{
			Data:   body,
			Format: FormatJSON,
			Err:    fmt.Errorf("invalid JSON"),
		}
	}

	modelsData := gjson.GetBytes(body, p.modelsFieldPath)
	if !modelsData.Exists() {
		return []domain.RemoteModel{}, nil
	}

	if !modelsData.IsArray() {
		return nil, &ParseError{
			Data:   body,
			Format: FormatJSON,
			Err:    fmt.Errorf("models field '%s' is not an array", p.modelsFieldPath),
		}
	}

	entries := modelsData.Array()
	models := make([]domain.RemoteModel, 0, len(entries))
	for i, entry := range entries {
		id := entry.Get("id")
		if id.Type != gjson.String || id.String() == "" {
			p.logger.Debug("Skipping model entry without id", "index", i)
			continue
		}

		object := entry.Get("object").String()
		if object == "" {
			object = constants.ModelObjectType
		}

		models = append(models, domain.RemoteModel{
			ID:     id.String(),
			Object: object,
		})
	}

	return models, nil
}
