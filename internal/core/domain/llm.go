package domain

import "time"

// RemoteModel is a single entry of an OpenAI compatible /v1/models listing
type RemoteModel struct {
	ID     string `json:"id"`
	Object string `json:"object"`
}

// LLM is the canonical descriptor of a usable model
type LLM struct {
	Source        *Source        `json:"-"`
	Settings      map[string]any `json:"settings"`
	ID            string         `json:"id"`
	Label         string         `json:"label"`
	Description   string         `json:"description"`
	SourceID      SourceID       `json:"source_id"`
	Tags          []string       `json:"tags"`
	Created       int64          `json:"created"`
	ContextTokens int            `json:"context_tokens"`
}

// Access holds the parameters of a list models call. LocalAI needs no
// credentials so everything but the host is left empty.
type Access struct {
	OAIKey  string
	OAIHost string
	OAIOrg  string
	HeliKey string
}

func LocalAIAccess(hostURL string) Access {
	return Access{
		OAIKey:  "",
		OAIHost: hostURL,
		OAIOrg:  "",
		HeliKey: "",
	}
}

type StoreEventType string

const (
	EventSetupUpdated  StoreEventType = "setup_updated"
	EventSourceAdded   StoreEventType = "source_added"
	EventModelsAdded   StoreEventType = "models_added"
	EventModelsRemoved StoreEventType = "models_removed"
	EventSetupReloaded StoreEventType = "setup_reloaded"
)

type StoreEvent struct {
	Timestamp time.Time
	Type      StoreEventType
	SourceID  SourceID
	Count     int
}

// Clone copies the descriptor, sharing only the Source back-reference
func (l *LLM) Clone() *LLM {
	c := *l
	if l.Tags != nil {
		c.Tags = append([]string(nil), l.Tags...)
	}
	if l.Settings != nil {
		c.Settings = make(map[string]any, len(l.Settings))
		for k, v := range l.Settings {
			c.Settings[k] = v
		}
	}
	return &c
}
