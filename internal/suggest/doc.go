// Package suggest fetches ghost line suggestions from a remote service.
//
// A Client answers one Request with raw suggestions. HTTPClient speaks the
// report service's JSON contract; LLMClient asks an OpenAI-compatible chat
// model for the same JSON shape.
//
// Fetcher drives a Client from the editor's idle timer. Only one request
// is outstanding at a time: a new one cancels the previous, and a result
// that arrives after being superseded is dropped. Failures of any kind are
// logged and delivered as an empty result.
package suggest
