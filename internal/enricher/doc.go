// Package enricher provides the optional semantic annotation capability
// used during metadata generation: a short summary, a topic list and
// named entities per chunk.
//
// Enrichment is strictly best-effort. Providers can be absent (no-op),
// time out, or return garbage; none of that may ever fail chunk
// production. Callers degrade the affected chunk to its non-enriched
// form and move on.
//
// # Providers
//
//   - gemini: Google generateContent API
//   - openai: chat completions API
//   - noop:   capability absent; every call returns ErrNotConfigured
//
// # Selection
//
// Explicit selection via configuration, or environment detection:
//
//	export DOCCHUNK_ENRICHMENT_PROVIDER=gemini
//	export GEMINI_API_KEY=...
//
//	enr, err := enricher.NewFromEnv()
//
// With no provider variable set, the factory picks the first available
// API key and otherwise falls back to the no-op provider.
//
// # Behavior
//
// Input text is truncated to MaxInputChars before the call. Replies are
// fence-stripped and JSON-decoded, with topic/entity lists clamped to
// small fixed limits. Results are cached by content hash (LRU), calls are
// rate limited, and transient failures get a small bounded retry with
// exponential backoff; context cancellation stops retrying immediately.
package enricher
