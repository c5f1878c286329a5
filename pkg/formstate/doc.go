// Package formstate implements the form controller the curator form is built
// on: a mutable record of values addressed by dotted paths ("name",
// "playlists.0.link"), per-path validation rules registered by whoever
// renders the field, array helpers that keep stable row keys, and a submit
// step that validates every registered path before handing the values on.
//
// A Controller belongs to a single form instance and is not safe for
// concurrent use.
package formstate
