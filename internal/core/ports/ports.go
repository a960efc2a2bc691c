package ports

import (
	"context"

	"github.com/thushan/llmsource/internal/core/domain"
)

// ModelLister performs the remote "list models" call against a server
type ModelLister interface {
	ListModels(ctx context.Context, access domain.Access) ([]domain.RemoteModel, error)
}

// SourceStore owns the per-source setup
type SourceStore interface {
	Source(id domain.SourceID) (*domain.Source, error)
	Sources() []*domain.Source
	AddSource(ctx context.Context, source *domain.Source) error
	Setup(id domain.SourceID) (domain.LocalAISetup, error)
	UpdateSetup(ctx context.Context, id domain.SourceID, patch domain.SetupPatch) error
}

// ModelStore is the append capable model collection shared by every source
type ModelStore interface {
	AddLLMs(ctx context.Context, llms []*domain.LLM) error
	LLMsForSource(id domain.SourceID) []*domain.LLM
	CountForSource(id domain.SourceID) int
	RemoveSourceLLMs(ctx context.Context, id domain.SourceID) int
	All() []*domain.LLM
}
