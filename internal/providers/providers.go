package providers

import "context"

// HookRequest carries the inputs for hook generation. FullContent and
// Insights are optional; when present the provider should prefer
// context-aware generation over title-only generation.
type HookRequest struct {
	Title       string
	CategoryID  string
	FullContent string
	Insights    string
}

// ScriptRequest carries the inputs for full script generation.
type ScriptRequest struct {
	Title       string
	Hook        string
	CategoryID  string
	FullContent string
	Insights    string
	Language    string
}

// ScriptResult is the provider's script output before voiceover extraction.
type ScriptResult struct {
	Body  string
	Title string
}

// ExtractedContent is the result of pulling article text for a topic.
type ExtractedContent struct {
	FullContent string
	Insights    string
}

// DiscoveredSource is one feed suggestion from auto discovery.
type DiscoveredSource struct {
	Name string
	URL  string
	Type string
}

// Generator produces script content. Implementations call out to an LLM;
// errors should be wrapped so the worker can classify them as provider
// failures.
type Generator interface {
	GenerateHook(ctx context.Context, req HookRequest) (string, error)
	GenerateScript(ctx context.Context, req ScriptRequest) (ScriptResult, error)
	GenerateStoryboard(ctx context.Context, voiceText string) (string, error)
	PickMusic(ctx context.Context, title, category string) (string, error)
	GenerateSEO(ctx context.Context, title, script string) (string, error)
	TranslateTitle(ctx context.Context, title, language string) (string, error)
	ExtractContent(ctx context.Context, url, rawText string) (ExtractedContent, error)
	DiscoverSources(ctx context.Context, categoryID string) ([]DiscoveredSource, error)
	HealthCheck(ctx context.Context) error
}

// Voice synthesizes a voiceover asset from voice text. A deployment without
// a voice provider uses UnavailableVoice, which the pipeline treats as a
// soft skip rather than an error.
type Voice interface {
	Available() bool
	Synthesize(ctx context.Context, text, stylePreset string) (string, error)
}

// UnavailableVoice is the fallback Voice used when synthesis is not
// configured.
type UnavailableVoice struct{}

// Available reports false; synthesis is not configured.
func (UnavailableVoice) Available() bool { return false }

// Synthesize returns an empty asset reference.
func (UnavailableVoice) Synthesize(context.Context, string, string) (string, error) {
	return "", nil
}
