package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"reelpipe/internal/providers"
	"reelpipe/internal/services"
)

// Generator implements providers.Generator on top of the OpenRouter client.
type Generator struct {
	client *Client
}

// NewGenerator wraps an OpenRouter client as a content generator.
func NewGenerator(client *Client) *Generator {
	return &Generator{client: client}
}

func (g *Generator) GenerateHook(ctx context.Context, req providers.HookRequest) (string, error) {
	if strings.TrimSpace(req.Title) == "" {
		return "", services.Wrap(services.ErrValidation, "openrouter", "hook", "title required", nil)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Topic: %s\n", req.Title)
	if req.CategoryID != "" {
		fmt.Fprintf(&prompt, "Category: %s\n", req.CategoryID)
	}
	if req.FullContent != "" {
		fmt.Fprintf(&prompt, "Article content:\n%s\n", clip(req.FullContent, 4000))
	}
	if req.Insights != "" {
		fmt.Fprintf(&prompt, "Key insights:\n%s\n", clip(req.Insights, 2000))
	}

	content, err := g.client.CompleteJSON(ctx, hookSystemPrompt, prompt.String())
	if err != nil {
		return "", services.Wrap(services.ErrProvider, "openrouter", "hook", "completion failed", err)
	}
	var parsed struct {
		Hook string `json:"hook"`
	}
	if err := DecodeJSON(content, &parsed); err != nil {
		return "", services.Wrap(services.ErrProvider, "openrouter", "hook", "parse response", err)
	}
	hook := strings.TrimSpace(parsed.Hook)
	if hook == "" {
		return "", services.Wrap(services.ErrProvider, "openrouter", "hook", "empty hook in response", nil)
	}
	return hook, nil
}

func (g *Generator) GenerateScript(ctx context.Context, req providers.ScriptRequest) (providers.ScriptResult, error) {
	var empty providers.ScriptResult
	if strings.TrimSpace(req.Title) == "" {
		return empty, services.Wrap(services.ErrValidation, "openrouter", "script", "title required", nil)
	}

	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Topic: %s\n", req.Title)
	if req.Hook != "" {
		fmt.Fprintf(&prompt, "Hook: %s\n", req.Hook)
	}
	if req.CategoryID != "" {
		fmt.Fprintf(&prompt, "Category: %s\n", req.CategoryID)
	}
	if req.Language != "" {
		fmt.Fprintf(&prompt, "Language: %s\n", req.Language)
	}
	if req.FullContent != "" {
		fmt.Fprintf(&prompt, "Article content:\n%s\n", clip(req.FullContent, 6000))
	}
	if req.Insights != "" {
		fmt.Fprintf(&prompt, "Key insights:\n%s\n", clip(req.Insights, 2000))
	}

	content, err := g.client.CompleteJSON(ctx, scriptSystemPrompt, prompt.String())
	if err != nil {
		return empty, services.Wrap(services.ErrProvider, "openrouter", "script", "completion failed", err)
	}
	var parsed struct {
		Title string `json:"title"`
		Body  string `json:"body"`
	}
	if err := DecodeJSON(content, &parsed); err != nil {
		return empty, services.Wrap(services.ErrProvider, "openrouter", "script", "parse response", err)
	}
	if strings.TrimSpace(parsed.Body) == "" {
		return empty, services.Wrap(services.ErrProvider, "openrouter", "script", "empty script body", nil)
	}
	return providers.ScriptResult{
		Body:  strings.TrimSpace(parsed.Body),
		Title: strings.TrimSpace(parsed.Title),
	}, nil
}

func (g *Generator) GenerateStoryboard(ctx context.Context, voiceText string) (string, error) {
	if strings.TrimSpace(voiceText) == "" {
		return "", services.Wrap(services.ErrValidation, "openrouter", "storyboard", "voice text required", nil)
	}
	return g.completeJSONDocument(ctx, storyboardSystemPrompt, clip(voiceText, 6000), "storyboard")
}

func (g *Generator) PickMusic(ctx context.Context, title, category string) (string, error) {
	prompt := fmt.Sprintf("Video title: %s\nCategory: %s", title, category)
	return g.completeJSONDocument(ctx, musicSystemPrompt, prompt, "music")
}

func (g *Generator) GenerateSEO(ctx context.Context, title, script string) (string, error) {
	prompt := fmt.Sprintf("Video title: %s\nScript:\n%s", title, clip(script, 6000))
	return g.completeJSONDocument(ctx, seoSystemPrompt, prompt, "seo")
}

// completeJSONDocument runs a JSON completion and returns the payload as a
// compact, validated JSON string for direct storage.
func (g *Generator) completeJSONDocument(ctx context.Context, systemPrompt, userPrompt, op string) (string, error) {
	content, err := g.client.CompleteJSON(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", services.Wrap(services.ErrProvider, "openrouter", op, "completion failed", err)
	}
	var document json.RawMessage
	if err := DecodeJSON(content, &document); err != nil {
		return "", services.Wrap(services.ErrProvider, "openrouter", op, "parse response", err)
	}
	compact, err := json.Marshal(document)
	if err != nil {
		return "", services.Wrap(services.ErrProvider, "openrouter", op, "encode document", err)
	}
	return string(compact), nil
}

func (g *Generator) TranslateTitle(ctx context.Context, title, language string) (string, error) {
	if strings.TrimSpace(title) == "" {
		return "", services.Wrap(services.ErrValidation, "openrouter", "translate", "title required", nil)
	}
	if language == "" {
		language = "English"
	}

	prompt := fmt.Sprintf("Title: %s\nTarget language: %s", title, language)
	content, err := g.client.CompleteJSON(ctx, translateSystemPrompt, prompt)
	if err != nil {
		return "", services.Wrap(services.ErrProvider, "openrouter", "translate", "completion failed", err)
	}
	var parsed struct {
		Translated string `json:"translated"`
	}
	if err := DecodeJSON(content, &parsed); err != nil {
		return "", services.Wrap(services.ErrProvider, "openrouter", "translate", "parse response", err)
	}
	translated := strings.TrimSpace(parsed.Translated)
	if translated == "" {
		return "", services.Wrap(services.ErrProvider, "openrouter", "translate", "empty translation", nil)
	}
	return translated, nil
}

func (g *Generator) ExtractContent(ctx context.Context, url, rawText string) (providers.ExtractedContent, error) {
	var empty providers.ExtractedContent
	if strings.TrimSpace(url) == "" && strings.TrimSpace(rawText) == "" {
		return empty, services.Wrap(services.ErrValidation, "openrouter", "extract", "url or raw text required", nil)
	}

	var prompt strings.Builder
	if url != "" {
		fmt.Fprintf(&prompt, "Article URL: %s\n", url)
	}
	if rawText != "" {
		fmt.Fprintf(&prompt, "Raw text:\n%s\n", clip(rawText, 8000))
	}

	content, err := g.client.CompleteJSON(ctx, extractSystemPrompt, prompt.String())
	if err != nil {
		return empty, services.Wrap(services.ErrProvider, "openrouter", "extract", "completion failed", err)
	}
	var parsed struct {
		Content  string   `json:"content"`
		Insights []string `json:"insights"`
	}
	if err := DecodeJSON(content, &parsed); err != nil {
		return empty, services.Wrap(services.ErrProvider, "openrouter", "extract", "parse response", err)
	}
	insights, err := json.Marshal(parsed.Insights)
	if err != nil {
		return empty, services.Wrap(services.ErrProvider, "openrouter", "extract", "encode insights", err)
	}
	return providers.ExtractedContent{
		FullContent: strings.TrimSpace(parsed.Content),
		Insights:    string(insights),
	}, nil
}

func (g *Generator) DiscoverSources(ctx context.Context, categoryID string) ([]providers.DiscoveredSource, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, services.Wrap(services.ErrValidation, "openrouter", "discovery", "category required", nil)
	}

	content, err := g.client.CompleteJSON(ctx, discoverySystemPrompt, "Category: "+categoryID)
	if err != nil {
		return nil, services.Wrap(services.ErrProvider, "openrouter", "discovery", "completion failed", err)
	}
	var parsed struct {
		Sources []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
			Type string `json:"type"`
		} `json:"sources"`
	}
	if err := DecodeJSON(content, &parsed); err != nil {
		return nil, services.Wrap(services.ErrProvider, "openrouter", "discovery", "parse response", err)
	}

	var discovered []providers.DiscoveredSource
	for _, source := range parsed.Sources {
		name := strings.TrimSpace(source.Name)
		url := strings.TrimSpace(source.URL)
		if name == "" || url == "" {
			continue
		}
		discovered = append(discovered, providers.DiscoveredSource{
			Name: name,
			URL:  url,
			Type: strings.ToLower(strings.TrimSpace(source.Type)),
		})
	}
	if len(discovered) == 0 {
		return nil, services.Wrap(services.ErrProvider, "openrouter", "discovery", "no usable sources in response", nil)
	}
	return discovered, nil
}

func (g *Generator) HealthCheck(ctx context.Context) error {
	if err := g.client.HealthCheck(ctx); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		return services.Wrap(services.ErrProvider, "openrouter", "health", "check failed", err)
	}
	return nil
}

func clip(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
