// Package model defines the typed form model consumed by renderers. Types live
// in internal/model and are re-exported here so callers and renderers outside
// the module share a single definition. A FormModel is split into sections;
// repeated rows (playlists, social links) are Groups whose fields are named by
// dotted paths such as "playlists.0.link", matching the names the rendered
// controls post back. Actions describe the buttons a renderer must offer
// (append/remove rows, submit) and carry the value the button posts.
package model
