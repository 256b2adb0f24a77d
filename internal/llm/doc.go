// Package llm drafts shop text with chat-completion models. It supports
// OpenRouter, OpenAI, Anthropic and Gemini, with retry logic, rate limiting
// and response caching layered on top by Assistant.
package llm
