package internal

import (
	"fmt"

	"github.com/samber/lo"
)

// ModelPreferenceKey stores the selected language model id
const ModelPreferenceKey = "selectedModel"

// ModelOption is one entry of the model picker
type ModelOption struct {
	ID          string
	Name        string
	Description string
}

// ModelCatalog lists the selectable models; the first one is the default
var ModelCatalog = []ModelOption{
	{ID: "gpt-4", Name: "GPT-4", Description: "Most capable GPT model"},
	{ID: "gpt-3.5", Name: "GPT-3.5", Description: "Faster, cost-effective GPT"},
	{ID: "gemini-pro", Name: "Gemini Pro", Description: "Google's advanced LLM"},
	{ID: "claude-2", Name: "Claude 2", Description: "Anthropic's latest model"},
	{ID: "llama-2", Name: "LLaMA 2", Description: "Meta's open source LLM"},
}

// FindModel looks a model up by id
func FindModel(id string) (ModelOption, bool) {
	return lo.Find(ModelCatalog, func(m ModelOption) bool {
		return m.ID == id
	})
}

// SelectedModel returns the stored model, falling back to the first catalog entry
func SelectedModel(prefs Preferences) ModelOption {
	fallback := ModelCatalog[0]
	if prefs == nil {
		return fallback
	}
	id, ok, err := prefs.Get(ModelPreferenceKey)
	if err != nil {
		LogWarn("Failed to load model preference: %v", err)
		return fallback
	}
	if !ok {
		return fallback
	}
	if m, found := FindModel(id); found {
		return m
	}
	LogDebug("Stored model %q is not in the catalog, using %s", id, fallback.ID)
	return fallback
}

// SelectModel validates and persists a model choice
func SelectModel(prefs Preferences, id string) (ModelOption, error) {
	m, ok := FindModel(id)
	if !ok {
		ids := lo.Map(ModelCatalog, func(m ModelOption, _ int) string { return m.ID })
		return ModelOption{}, fmt.Errorf("unknown model: %s (available: %v)", id, ids)
	}
	if err := prefs.Set(ModelPreferenceKey, m.ID); err != nil {
		return ModelOption{}, err
	}
	return m, nil
}
