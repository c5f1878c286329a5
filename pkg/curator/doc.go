// Package curator implements the curator information form: profile fields,
// the repeated playlist and social link groups, their validation rules and
// the field model renderers consume. A Form is bound to a formstate.FormState
// and is owned by a single request or session.
package curator
