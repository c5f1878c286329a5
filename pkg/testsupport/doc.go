// Package testsupport holds helpers shared by package tests: deterministic
// row keys, a valid set of form values and golden file utilities.
package testsupport
