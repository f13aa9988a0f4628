// Package openrouter implements content generation against the OpenRouter
// chat completion API, with bounded retry and JSON payload sanitizing.
package openrouter
