// Package chat provides the Gemini-backed assistant behind the public
// chat widget. The client discovers usable models at request time and
// walks a fallback list, so a deprecated model name never takes the
// feature down. Without an API key it degrades to a static reply.
package chat
