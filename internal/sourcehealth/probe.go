package sourcehealth

import (
	"context"
	"fmt"
	"io"
	"math"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// ProbeResult is the raw outcome of one network probe, before any status
// transition is applied.
type ProbeResult struct {
	OK             bool
	StatusCode     int
	ItemCount      int
	FreshnessHours float64
	LatencyMS      float64
	Detail         string
}

const maxProbeBody = 2 << 20

// Prober fetches a source URL and classifies the response.
type Prober struct {
	client *http.Client
	now    func() time.Time
}

// NewProber returns a Prober with the given request timeout.
func NewProber(timeout time.Duration) *Prober {
	return &Prober{
		client: &http.Client{Timeout: timeout},
		now:    time.Now,
	}
}

// Probe fetches url and classifies the body. A 2xx response with zero feed
// items still counts as a failure so dead-but-responding feeds escalate.
func (p *Prober) Probe(ctx context.Context, url string) ProbeResult {
	start := p.now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return ProbeResult{Detail: fmt.Sprintf("invalid URL: %v", err)}
	}
	req.Header.Set("User-Agent", "reelpipe-healthcheck/1.0")

	resp, err := p.client.Do(req)
	latency := float64(p.now().Sub(start).Milliseconds())
	if err != nil {
		return ProbeResult{LatencyMS: latency, Detail: fmt.Sprintf("request failed: %v", err)}
	}
	defer resp.Body.Close()

	result := ProbeResult{StatusCode: resp.StatusCode, LatencyMS: latency}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		result.Detail = fmt.Sprintf("HTTP %d", resp.StatusCode)
		return result
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProbeBody))
	if err != nil {
		result.Detail = fmt.Sprintf("read body: %v", err)
		return result
	}

	items := countFeedItems(string(body))
	if items == 0 {
		result.Detail = "No RSS items found"
		return result
	}

	result.OK = true
	result.ItemCount = items
	result.FreshnessHours = feedFreshnessHours(string(body), p.now())
	return result
}

// countFeedItems counts feed entries by tag presence rather than full XML
// parsing. Good enough to tell a live feed from an empty or error page.
func countFeedItems(body string) int {
	items := strings.Count(body, "<item>") + strings.Count(body, "<item ")
	entries := strings.Count(body, "<entry>") + strings.Count(body, "<entry ")
	if items > entries {
		return items
	}
	return entries
}

var feedDateRe = regexp.MustCompile(`<(?:pubDate|published|updated|dc:date)>([^<]+)</`)

var feedDateLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	"2006-01-02T15:04:05Z0700",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02 15:04:05",
}

// feedFreshnessHours returns hours since the most recent item timestamp in
// the body, rounded to one decimal. Returns 0 when no timestamp parses.
func feedFreshnessHours(body string, now time.Time) float64 {
	var newest time.Time
	for _, match := range feedDateRe.FindAllStringSubmatch(body, -1) {
		raw := strings.TrimSpace(match[1])
		for _, layout := range feedDateLayouts {
			ts, err := time.Parse(layout, raw)
			if err != nil {
				continue
			}
			if ts.After(newest) {
				newest = ts
			}
			break
		}
	}
	if newest.IsZero() {
		return 0
	}
	hours := now.Sub(newest).Hours()
	if hours < 0 {
		hours = 0
	}
	return math.Round(hours*10) / 10
}
