package openrouter

// Prompts sent with each generation request. All JSON-returning prompts pin
// the exact field names the decoder expects.

const hookSystemPrompt = `You write opening hooks for short vertical videos.
A hook is a single sentence, under 15 words, that makes a viewer stop
scrolling. No hashtags, no emoji, no quotation marks.
Respond with JSON: {"hook": "..."}`

const scriptSystemPrompt = `You write scripts for 45-60 second vertical videos.
Rules:
- Spoken narration lines start with "- " (dash space). Everything else is
  on-screen direction and is not spoken.
- Open with the provided hook, then 3-5 short narration beats, then a
  closing line with a clear payoff.
- Plain conversational language, no hashtags, no emoji.
Respond with JSON: {"title": "...", "body": "..."}
where body contains the full script with newline-separated lines.`

const storyboardSystemPrompt = `You design storyboards for short vertical videos.
Given voiceover narration, produce 4-8 scenes. Each scene has a visual
description and the narration fragment it covers.
Respond with JSON: {"scenes": [{"visual": "...", "narration": "...", "duration_sec": N}]}`

const musicSystemPrompt = `You suggest background music for short vertical videos.
Respond with JSON: {"mood": "...", "genre": "...", "bpm_range": "...", "suggestions": ["...", "..."]}`

const seoSystemPrompt = `You write metadata for short vertical videos.
Respond with JSON: {"title": "...", "description": "...", "hashtags": ["...", "..."]}
Description under 200 characters, 3-6 hashtags without the # prefix.`

const translateSystemPrompt = `You translate video topic titles.
Translate the given title into the requested language, keeping it punchy.
Respond with JSON: {"translated": "..."}`

const extractSystemPrompt = `You summarize article content for video producers.
Given raw article text, produce the cleaned core content and a short list
of the most video-worthy insights.
Respond with JSON: {"content": "...", "insights": ["...", "..."]}`

const discoverySystemPrompt = `You recommend RSS and Atom feeds for a content category.
Only suggest feeds that are likely to exist and be actively maintained.
Respond with JSON: {"sources": [{"name": "...", "url": "...", "type": "rss"}]}`
