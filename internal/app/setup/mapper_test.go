package setup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thushan/llmsource/internal/core/domain"
)

func TestDeriveLabel(t *testing.T) {
	tests := []struct {
		remoteID string
		expected string
	}{
		{"ggml-llama-7b.bin", "Llama 7b"},
		{"ggml-my-model.bin", "My model"},
		{"gpt4all-j", "Gpt4all j"},
		{"luna-ai-llama2", "Luna ai llama2"},
		{"already Capital", "Already Capital"},
		{"ggml-.bin", ""},
		{"", ""},
		// only the first occurrence of each token goes
		{"ggml-ggml-x.bin.bin", "Ggml x.bin"},
		{"model.bin-ggml-q4", "Model q4"},
		{"émile-7b", "Émile 7b"},
		{"7b-chat", "7b chat"},
	}

	for _, tt := range tests {
		t.Run(tt.remoteID, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveLabel(tt.remoteID))
		})
	}
}

func TestDeriveLabel_Deterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		assert.Equal(t, "Llama 7b", DeriveLabel("ggml-llama-7b.bin"))
	}
}

func TestMapper_ToLLM(t *testing.T) {
	source := &domain.Source{ID: "localai", VendorID: domain.VendorLocalAI}
	m := NewMapper(DefaultMapperOptions())

	llm := m.ToLLM(domain.RemoteModel{ID: "gpt4all-j", Object: "model"}, source)

	assert.Equal(t, "localai-gpt4all-j", llm.ID)
	assert.Equal(t, "Gpt4all j", llm.Label)
	assert.Zero(t, llm.Created)
	assert.Equal(t, "Local model", llm.Description)
	assert.Equal(t, []string{"stream", "chat"}, llm.Tags)
	assert.Equal(t, 4096, llm.ContextTokens)
	assert.Equal(t, domain.SourceID("localai"), llm.SourceID)
	assert.Same(t, source, llm.Source)
	assert.NotNil(t, llm.Settings)
	assert.Empty(t, llm.Settings)
}

func TestMapper_FixedCapabilitiesRegardlessOfInput(t *testing.T) {
	source := &domain.Source{ID: "localai"}
	m := NewMapper(MapperOptions{})

	llms := m.ToLLMs([]domain.RemoteModel{
		{ID: "whisper-1", Object: "model"},
		{ID: "bert-embeddings", Object: "embedding"},
		{ID: "stablediffusion"},
	}, source)

	require.Len(t, llms, 3)
	for _, llm := range llms {
		assert.Equal(t, 4096, llm.ContextTokens)
		assert.Equal(t, []string{"stream", "chat"}, llm.Tags)
	}

	// tags are not shared between descriptors
	llms[0].Tags[0] = "changed"
	assert.Equal(t, "stream", llms[1].Tags[0])
}

func TestMapper_ConfigurableContextTokens(t *testing.T) {
	m := NewMapper(MapperOptions{ContextTokens: 8192, Description: "Workstation model"})
	llm := m.ToLLM(domain.RemoteModel{ID: "x"}, &domain.Source{ID: "localai"})

	assert.Equal(t, 8192, llm.ContextTokens)
	assert.Equal(t, "Workstation model", llm.Description)
}

func TestMapper_ToLLMsKeepsOrderAndNeedsSource(t *testing.T) {
	m := NewMapper(DefaultMapperOptions())
	models := []domain.RemoteModel{{ID: "b"}, {ID: "a"}}

	llms := m.ToLLMs(models, &domain.Source{ID: "localai"})
	require.Len(t, llms, 2)
	assert.Equal(t, "localai-b", llms[0].ID)
	assert.Equal(t, "localai-a", llms[1].ID)

	assert.Empty(t, m.ToLLMs(models, nil))
}
