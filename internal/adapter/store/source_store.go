package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/puzpuzpuz/xsync/v4"
	"gopkg.in/yaml.v3"

	"github.com/thushan/llmsource/internal/core/domain"
	"github.com/thushan/llmsource/internal/logger"
	"github.com/thushan/llmsource/pkg/eventbus"
)

const (
	DefaultSetupFileMode = 0o600
	reloadDebounce       = 100 * time.Millisecond
)

type setupFile struct {
	Sources []*domain.Source `yaml:"sources"`
}

// SourceStore keeps every configured source and its setup. Reads are lock
// free, writes are serialised so a read-modify-write of a setup is atomic.
// When a file is attached every change is written through to it.
type SourceStore struct {
	sources  *xsync.Map[domain.SourceID, *domain.Source]
	bus      *eventbus.EventBus[domain.StoreEvent]
	logger   *logger.StyledLogger
	filePath string
	order    []domain.SourceID
	lastSave []byte
	writeMu  sync.RWMutex
}

func NewSourceStore(bus *eventbus.EventBus[domain.StoreEvent], logger *logger.StyledLogger) *SourceStore {
	return &SourceStore{
		sources: xsync.NewMap[domain.SourceID, *domain.Source](),
		bus:     bus,
		logger:  logger,
	}
}

// AttachFile loads sources from path (if it exists) and persists later changes
// to it. Sources already in the store take precedence over the file.
func (s *SourceStore) AttachFile(path string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.filePath = path

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.saveLocked()
		}
		return fmt.Errorf("unable to read setup file %s: %w", path, err)
	}

	var file setupFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("unable to decode setup file %s: %w", path, err)
	}

	for _, source := range file.Sources {
		if source == nil || source.ID == "" {
			continue
		}
		if _, exists := s.sources.Load(source.ID); exists {
			continue
		}
		s.storeLocked(normaliseSource(source))
	}

	s.logger.InfoWithCount("Loaded sources from", len(file.Sources), "file", path)
	return s.saveLocked()
}

func (s *SourceStore) Source(id domain.SourceID) (*domain.Source, error) {
	source, ok := s.sources.Load(id)
	if !ok {
		return nil, &domain.SourceNotFoundError{SourceID: id}
	}
	return source.Clone(), nil
}

func (s *SourceStore) Sources() []*domain.Source {
	s.writeMu.RLock()
	defer s.writeMu.RUnlock()

	sources := make([]*domain.Source, 0, len(s.order))
	for _, id := range s.order {
		if source, ok := s.sources.Load(id); ok {
			sources = append(sources, source.Clone())
		}
	}
	return sources
}

func (s *SourceStore) AddSource(ctx context.Context, source *domain.Source) error {
	if source == nil || source.ID == "" {
		return fmt.Errorf("source id cannot be empty")
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.writeMu.Lock()
	if _, exists := s.sources.Load(source.ID); exists {
		s.writeMu.Unlock()
		return fmt.Errorf("source %s already exists", source.ID)
	}
	s.storeLocked(normaliseSource(source.Clone()))
	err := s.saveLocked()
	s.writeMu.Unlock()

	s.logger.InfoWithSource("Added source", string(source.ID), "vendor", source.VendorID)
	s.publish(domain.EventSourceAdded, source.ID)
	return err
}

// Setup returns the normalised setup of a source, defaults applied
func (s *SourceStore) Setup(id domain.SourceID) (domain.LocalAISetup, error) {
	source, ok := s.sources.Load(id)
	if !ok {
		return domain.LocalAISetup{}, &domain.SourceNotFoundError{SourceID: id}
	}
	return domain.NormalizeSetup(source.Setup), nil
}

// UpdateSetup merges patch into the stored setup of a source
func (s *SourceStore) UpdateSetup(ctx context.Context, id domain.SourceID, patch domain.SetupPatch) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.writeMu.Lock()
	current, ok := s.sources.Load(id)
	if !ok {
		s.writeMu.Unlock()
		return &domain.SourceNotFoundError{SourceID: id}
	}

	updated := current.Clone()
	setup := domain.NormalizeSetup(updated.Setup)
	previousHost := setup.HostURL
	if !setup.Apply(patch) && updated.Setup != nil {
		s.writeMu.Unlock()
		return nil
	}
	updated.Setup = &setup
	s.sources.Store(id, updated)
	err := s.saveLocked()
	s.writeMu.Unlock()

	s.logger.Debug("Setup updated", "source", id, "previous_host", previousHost, "host", setup.HostURL)
	s.publish(domain.EventSetupUpdated, id)
	return err
}

// Watch reloads the attached file when something else edits it. Blocks until
// ctx is done.
func (s *SourceStore) Watch(ctx context.Context) error {
	s.writeMu.RLock()
	path := s.filePath
	s.writeMu.RUnlock()

	if path == "" {
		return fmt.Errorf("no setup file attached")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create setup file watcher: %w", err)
	}
	defer watcher.Close()

	// editors replace files, watch the directory instead of the inode
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("unable to watch %s: %w", filepath.Dir(path), err)
	}

	target := filepath.Clean(path)
	var debounce <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				debounce = time.After(reloadDebounce)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("Setup file watcher error", "error", err)
		case <-debounce:
			debounce = nil
			if err := s.Reload(ctx); err != nil {
				s.logger.Warn("Failed to reload setup file", "file", target, "error", err)
			}
		}
	}
}

// Reload re-reads the attached file, replacing setups of known sources and
// adding new ones. Our own writes are recognised and skipped.
func (s *SourceStore) Reload(ctx context.Context) error {
	s.writeMu.Lock()

	if s.filePath == "" {
		s.writeMu.Unlock()
		return fmt.Errorf("no setup file attached")
	}

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		s.writeMu.Unlock()
		return fmt.Errorf("unable to read setup file %s: %w", s.filePath, err)
	}
	if bytes.Equal(data, s.lastSave) {
		s.writeMu.Unlock()
		return nil
	}

	var file setupFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		s.writeMu.Unlock()
		return fmt.Errorf("unable to decode setup file %s: %w", s.filePath, err)
	}

	var changed []domain.SourceID
	for _, source := range file.Sources {
		if source == nil || source.ID == "" {
			continue
		}
		source = normaliseSource(source)
		if current, ok := s.sources.Load(source.ID); ok {
			if sameSetup(current.Setup, source.Setup) && current.Label == source.Label {
				continue
			}
			s.sources.Store(source.ID, source)
		} else {
			s.storeLocked(source)
		}
		changed = append(changed, source.ID)
	}
	s.lastSave = data
	s.writeMu.Unlock()

	for _, id := range changed {
		s.logger.InfoWithSource("Reloaded setup for", string(id))
		s.publish(domain.EventSetupReloaded, id)
	}
	return nil
}

func (s *SourceStore) storeLocked(source *domain.Source) {
	s.sources.Store(source.ID, source)
	s.order = append(s.order, source.ID)
}

// saveLocked writes via a temp file and rename so readers never see half a file
func (s *SourceStore) saveLocked() error {
	if s.filePath == "" {
		return nil
	}

	file := setupFile{Sources: make([]*domain.Source, 0, len(s.order))}
	for _, id := range s.order {
		if source, ok := s.sources.Load(id); ok {
			file.Sources = append(file.Sources, source)
		}
	}

	data, err := yaml.Marshal(&file)
	if err != nil {
		return fmt.Errorf("unable to encode setup file: %w", err)
	}

	if dir := filepath.Dir(s.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("unable to create %s: %w", dir, err)
		}
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, DefaultSetupFileMode); err != nil {
		return fmt.Errorf("unable to write setup file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("unable to replace setup file %s: %w", s.filePath, err)
	}

	s.lastSave = data
	return nil
}

func (s *SourceStore) publish(eventType domain.StoreEventType, id domain.SourceID) {
	if s.bus == nil {
		return
	}
	s.bus.Publish(domain.StoreEvent{
		Type:      eventType,
		SourceID:  id,
		Timestamp: time.Now(),
	})
}

func normaliseSource(source *domain.Source) *domain.Source {
	if source.VendorID == "" {
		source.VendorID = domain.VendorLocalAI
	}
	return source
}

func sameSetup(a, b *domain.LocalAISetup) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
