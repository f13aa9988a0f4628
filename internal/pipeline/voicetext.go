package pipeline

import "strings"

// voiceMarkers are the leading markers that tag a line as spoken narration.
var voiceMarkers = []string{"- ", "– ", "— ", "-", "–", "—"}

// ExtractVoiceLines filters a full script body down to the voiceover track:
// lines starting with a dash marker are kept with the marker stripped, all
// other lines are on-screen direction. Pure string transform.
func ExtractVoiceLines(body string) string {
	var voice []string
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, marker := range voiceMarkers {
			if strings.HasPrefix(line, marker) {
				if stripped := strings.TrimSpace(strings.TrimPrefix(line, marker)); stripped != "" {
					voice = append(voice, stripped)
				}
				break
			}
		}
	}
	return strings.Join(voice, "\n")
}
