// Package vanilla renders form models to plain HTML using pongo2 templates.
// Every control is named by its dotted field path, array rows carry their
// stable key in data-key, and action buttons post their value under the
// model's action field.
package vanilla
