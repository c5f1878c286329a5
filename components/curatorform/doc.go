// Package curatorform serves the curator information form over net/http.
//
// GET and HEAD render an empty form. POST reloads the posted values into a
// fresh form state and runs the pressed button: adding or removing rows
// re-renders the form, removing the first playlist may redirect, and
// Continue validates and hands the profile to the configured submit handler.
// The response format is negotiated between the registered renderers (HTML
// by default, JSON on request).
package curatorform
