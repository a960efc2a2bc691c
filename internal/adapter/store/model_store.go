package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/internal/logger"
	"github.com/thushan/llmsource/pkg/eventbus"
)

// MemoryModelStore is the process-wide model collection. Writes append, so
// repeated fetches of the same source without clearing it first duplicate
// entries.
type MemoryModelStore struct {
	bus      *eventbus.EventBus[domain.StoreEvent]
	logger   *logger.StyledLogger
	llms     []*domain.LLM
	perCount map[domain.SourceID]int
	mu       sync.RWMutex
}

func NewMemoryModelStore(bus *eventbus.EventBus[domain.StoreEvent], logger *logger.StyledLogger) *MemoryModelStore {
	return &MemoryModelStore{
		bus:      bus,
		logger:   logger,
		llms:     make([]*domain.LLM, 0),
		perCount: make(map[domain.SourceID]int),
	}
}

func (s *MemoryModelStore) AddLLMs(ctx context.Context, llms []*domain.LLM) error {
	if len(llms) == 0 {
		return nil
	}

	for _, llm := range llms {
		if llm == nil {
			return domain.NewModelStoreError("add_llms", "", "", fmt.Errorf("descriptor cannot be nil"))
		}
		if llm.ID == "" {
			return domain.NewModelStoreError("add_llms", llm.SourceID, llm.ID, fmt.Errorf("descriptor id cannot be empty"))
		}
		if llm.SourceID == "" {
			return domain.NewModelStoreError("add_llms", llm.SourceID, llm.ID, fmt.Errorf("descriptor source cannot be empty"))
		}
	}

	select {
	case <-ctx.Done():
		return domain.NewModelStoreError("add_llms", llms[0].SourceID, "", ctx.Err())
	default:
	}

	added := make(map[domain.SourceID]int)

	s.mu.Lock()
	for _, llm := range llms {
		s.llms = append(s.llms, llm.Clone())
		s.perCount[llm.SourceID]++
		added[llm.SourceID]++
	}
	s.mu.Unlock()

	for sourceID, count := range added {
		s.logger.Debug("Appended models", "source", sourceID, "count", count)
		s.publish(domain.EventModelsAdded, sourceID, count)
	}
	return nil
}

func (s *MemoryModelStore) LLMsForSource(id domain.SourceID) []*domain.LLM {
	s.mu.RLock()
	defer s.mu.RUnlock()

	llms := make([]*domain.LLM, 0, s.perCount[id])
	for _, llm := range s.llms {
		if llm.SourceID == id {
			llms = append(llms, llm.Clone())
		}
	}
	return llms
}

// CountForSource is the cheap check used to decide whether a source needs a fetch
func (s *MemoryModelStore) CountForSource(id domain.SourceID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.perCount[id]
}

func (s *MemoryModelStore) RemoveSourceLLMs(ctx context.Context, id domain.SourceID) int {
	s.mu.Lock()
	kept := s.llms[:0]
	removed := 0
	for _, llm := range s.llms {
		if llm.SourceID == id {
			removed++
			continue
		}
		kept = append(kept, llm)
	}
	// drop references held past the new length
	for i := len(kept); i < len(s.llms); i++ {
		s.llms[i] = nil
	}
	s.llms = kept
	delete(s.perCount, id)
	s.mu.Unlock()

	if removed > 0 {
		s.publish(domain.EventModelsRemoved, id, removed)
	}
	return removed
}

func (s *MemoryModelStore) All() []*domain.LLM {
	s.mu.RLock()
	defer s.mu.RUnlock()

	llms := make([]*domain.LLM, len(s.llms))
	for i, llm := range s.llms {
		llms[i] = llm.Clone()
	}
	return llms
}

func (s *MemoryModelStore) publish(eventType domain.StoreEventType, id domain.SourceID, count int) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(domain.StoreEvent{
		Type:      eventType,
		SourceID:  id,
		Count:     count,
		Timestamp: time.Now(),
	})
}
