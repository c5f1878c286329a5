// Package template defines the template engine contract HTML renderers
// depend on. The gotemplate subpackage provides the pongo2 implementation.
package template
