// Package checks holds the field predicates shared by the curator form: the
// email shape, password strength, link (special characters and URL shape),
// playlist cost and phone number rules, plus the as-you-type phone
// formatter used while the phone field is being edited.
//
// Every predicate returns nil when the value passes or one of the exported
// *RuleError values, whose message is what the form shows next to the field.
package checks
