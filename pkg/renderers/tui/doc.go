// Package tui fills the curator form from a terminal. Prompts go through a
// PromptDriver (survey by default) and the submitted profile is encoded as
// JSON, YAML or plain text.
package tui
