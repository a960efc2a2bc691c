package domain

import (
	"errors"
	"fmt"
)

var (
	ErrFetchDisabled = errors.New("fetch disabled: host URL is not a valid http(s) URL")
	ErrStaleResponse = errors.New("stale response: host changed or panel closed before the fetch completed")
	ErrPanelClosed   = errors.New("panel closed")
)

type ModelStoreError struct {
	Err       error
	Operation string
	SourceID  SourceID
	ModelID   string
}

func (e *ModelStoreError) Error() string {
	if e.ModelID != "" {
		return fmt.Sprintf("model store %s failed for source %s, model %s: %v",
			e.Operation, e.SourceID, e.ModelID, e.Err)
	}
	return fmt.Sprintf("model store %s failed for source %s: %v", e.Operation, e.SourceID, e.Err)
}

func (e *ModelStoreError) Unwrap() error {
	return e.Err
}

func NewModelStoreError(operation string, sourceID SourceID, modelID string, err error) *ModelStoreError {
	return &ModelStoreError{
		Operation: operation,
		SourceID:  sourceID,
		ModelID:   modelID,
		Err:       err,
	}
}
