package store

import (
	"strconv"
	"strings"
	"time"
)

// JobStatus represents the lifecycle of a pipeline job.
type JobStatus string

const (
	JobQueued  JobStatus = "queued"
	JobRunning JobStatus = "running"
	JobDone    JobStatus = "done"
	JobError   JobStatus = "error"
)

// IsTerminal reports whether a job status admits no further transitions.
func (s JobStatus) IsTerminal() bool {
	return s == JobDone || s == JobError
}

// JobKind identifies which pipeline step a job performs.
type JobKind string

const (
	KindFetchTopics        JobKind = "fetch_topics"
	KindExtractContent     JobKind = "extract_content"
	KindTranslateTopic     JobKind = "translate_topic"
	KindGenerateHook       JobKind = "generate_hook"
	KindGenerateScript     JobKind = "generate_script"
	KindGenerateStoryboard JobKind = "generate_storyboard"
	KindGenerateVoice      JobKind = "generate_voice"
	KindPickMusic          JobKind = "pick_music"
	KindExportPackage      JobKind = "export_package"
	KindGenerateAll        JobKind = "generate_all"
	KindHealthCheck        JobKind = "health_check"
	KindHealthCheckAll     JobKind = "health_check_all"
	KindAutoDiscovery      JobKind = "auto_discovery"
	KindExtractTrends      JobKind = "extract_trends"
)

var allKinds = []JobKind{
	KindFetchTopics,
	KindExtractContent,
	KindTranslateTopic,
	KindGenerateHook,
	KindGenerateScript,
	KindGenerateStoryboard,
	KindGenerateVoice,
	KindPickMusic,
	KindExportPackage,
	KindGenerateAll,
	KindHealthCheck,
	KindHealthCheckAll,
	KindAutoDiscovery,
	KindExtractTrends,
}

var kindSet = func() map[JobKind]struct{} {
	set := make(map[JobKind]struct{}, len(allKinds))
	for _, kind := range allKinds {
		set[kind] = struct{}{}
	}
	return set
}()

// AllKinds returns the ordered list of known job kinds.
func AllKinds() []JobKind {
	cp := make([]JobKind, len(allKinds))
	copy(cp, allKinds)
	return cp
}

// ParseKind converts a string into a known JobKind.
func ParseKind(value string) (JobKind, bool) {
	normalized := JobKind(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := kindSet[normalized]
	return normalized, ok
}

// Payload carries the kind-specific references a job needs. Values are stored
// as strings; entity identifiers are parsed on access.
type Payload map[string]string

const (
	payloadScriptID   = "scriptId"
	payloadTopicID    = "topicId"
	payloadSourceID   = "sourceId"
	payloadCategoryID = "categoryId"
)

// ScriptID returns the referenced script identifier when present.
func (p Payload) ScriptID() (int64, bool) { return p.idValue(payloadScriptID) }

// TopicID returns the referenced topic identifier when present.
func (p Payload) TopicID() (int64, bool) { return p.idValue(payloadTopicID) }

// SourceID returns the referenced source identifier when present.
func (p Payload) SourceID() (int64, bool) { return p.idValue(payloadSourceID) }

// CategoryID returns the referenced category tag when present.
func (p Payload) CategoryID() (string, bool) {
	v, ok := p[payloadCategoryID]
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (p Payload) idValue(key string) (int64, bool) {
	raw, ok := p[key]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// ScriptPayload builds a payload referencing a script.
func ScriptPayload(scriptID int64) Payload {
	return Payload{payloadScriptID: strconv.FormatInt(scriptID, 10)}
}

// TopicPayload builds a payload referencing a topic.
func TopicPayload(topicID int64) Payload {
	return Payload{payloadTopicID: strconv.FormatInt(topicID, 10)}
}

// SourcePayload builds a payload referencing a source.
func SourcePayload(sourceID int64) Payload {
	return Payload{payloadSourceID: strconv.FormatInt(sourceID, 10)}
}

// CategoryPayload builds a payload referencing a category.
func CategoryPayload(categoryID string) Payload {
	return Payload{payloadCategoryID: strings.TrimSpace(categoryID)}
}

// Job is a unit of asynchronous pipeline work persisted in SQLite.
type Job struct {
	ID        int64
	Kind      JobKind
	Payload   Payload
	Status    JobStatus
	Progress  int
	Error     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// JobStats aggregates job counts per lifecycle state.
type JobStats struct {
	Total   int
	Queued  int
	Running int
	Done    int
	Errored int
}
