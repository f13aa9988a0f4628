package trends

import "regexp"

type pattern struct {
	label string
	re    *regexp.Regexp
}

// anglePatterns classify the editorial angle a group of headlines takes.
// Matching is case-insensitive over the joined titles.
var anglePatterns = []pattern{
	{"scandal", regexp.MustCompile(`(?i)\b(scandal|exposed|caught|leak(?:ed|s)?|lawsuit|sued|controversy|fired)\b`)},
	{"benefit", regexp.MustCompile(`(?i)\b(benefit|boost|improve|gain|advantage|save[sd]?|win(?:s|ning)?)\b`)},
	{"comparison", regexp.MustCompile(`(?i)\b(vs\.?|versus|compared?|better than|worse than|alternative)\b`)},
	{"mistake", regexp.MustCompile(`(?i)\b(mistake|error|fail(?:s|ed|ure)?|wrong|avoid|warning sign)\b`)},
	{"release", regexp.MustCompile(`(?i)\b(launch(?:es|ed)?|release[sd]?|announce[sd]?|unveil(?:s|ed)?|debut(?:s|ed)?|introduc(?:es|ed)|new version)\b`)},
	{"patch", regexp.MustCompile(`(?i)\b(patch(?:es|ed)?|fix(?:es|ed)?|update[sd]?|hotfix|security fix)\b`)},
	{"rumor", regexp.MustCompile(`(?i)\b(rumor|rumour|reportedly|allegedly|may|might|could|expected to|insider)\b`)},
	{"explanation", regexp.MustCompile(`(?i)\b(why|how|what is|explained|guide|understand(?:ing)?|meaning)\b`)},
	{"list", regexp.MustCompile(`(?i)\b(top \d+|\d+ (?:best|worst|ways|things|tips|reasons)|ranked|list of)\b`)},
	{"shocking", regexp.MustCompile(`(?i)\b(shocking|unbelievable|insane|crazy|you won'?t believe|stunning|jaw.dropping)\b`)},
}

// hookPatterns suggest which hook framing fits the cluster's headlines.
var hookPatterns = []pattern{
	{"question", regexp.MustCompile(`(?i)(\?|^(?:why|how|what|who|when|is|are|do|does|can|should)\b)`)},
	{"warning", regexp.MustCompile(`(?i)\b(warning|danger(?:ous)?|stop|don'?t|never|avoid|before you|risk)\b`)},
	{"demonstrative", regexp.MustCompile(`(?i)\b(this|these|here'?s|watch|look at|see how)\b`)},
	{"number", regexp.MustCompile(`\b\d+\b`)},
	{"contrast", regexp.MustCompile(`(?i)\b(but|however|instead|while|unlike|vs\.?|versus|actually)\b`)},
	{"secret", regexp.MustCompile(`(?i)\b(secret|hidden|nobody|no one|they don'?t want|revealed|truth about)\b`)},
}

func classify(patterns []pattern, titles []string) []string {
	var labels []string
	for _, p := range patterns {
		for _, title := range titles {
			if p.re.MatchString(title) {
				labels = append(labels, p.label)
				break
			}
		}
	}
	return labels
}

func classifyAngles(titles []string) []string {
	return classify(anglePatterns, titles)
}

func classifyHookPatterns(titles []string) []string {
	return classify(hookPatterns, titles)
}
