package formstate

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// SubmitFunc receives a snapshot of the values after validation passes.
type SubmitFunc func(ctx context.Context, values map[string]any) error

// Registration is what a field receives when it registers: the path it
// posts under, the value to display and its current errors.
type Registration struct {
	Name   string
	Value  string
	Errors []string
}

// Item describes one array row as returned by Fields.
type Item struct {
	Key   string
	Index int
	Value map[string]any
}

// FormState is the controller contract the curator form depends on.
type FormState interface {
	Register(path string, rules Rules) Registration
	Unregister(prefix string)
	Registered() []string
	Value(path string) (any, bool)
	SetValue(path string, value any) error
	Values() map[string]any
	Fields(path string) []Item
	AppendArrayItem(path string, value map[string]any) error
	RemoveArrayItem(path string, index int) error
	Errors() map[string][]string
	SetError(path, message string)
	ClearErrors()
	Validate() bool
	Submit(ctx context.Context, handler SubmitFunc) error
	Submitted() bool
}

// Controller is the in-memory FormState implementation.
type Controller struct {
	values      map[string]any
	rules       map[string]Rules
	errors      map[string][]string
	keys        map[string][]string
	submitCount int
	newKey      func() string
}

var _ FormState = (*Controller)(nil)

// Option configures a Controller.
type Option func(*Controller)

// WithKeyGenerator overrides how array row keys are minted.
func WithKeyGenerator(fn func() string) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newKey = fn
		}
	}
}

// New creates a controller seeded with defaults.
func New(defaults map[string]any, options ...Option) *Controller {
	c := &Controller{
		values: cloneValues(defaults),
		rules:  make(map[string]Rules),
		errors: make(map[string][]string),
		keys:   make(map[string][]string),
		newKey: func() string { return uuid.NewString() },
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Load writes flat dotted-path values (as posted by an HTML form) into the
// controller. Paths are applied in sorted order.
func (c *Controller) Load(flat map[string]string) error {
	paths := make([]string, 0, len(flat))
	for path := range flat {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	for _, path := range paths {
		if err := c.SetValue(path, flat[path]); err != nil {
			return err
		}
	}
	return nil
}

// Register records rules for path and returns the props a field renders with.
// Registering an already registered path replaces its rules.
func (c *Controller) Register(path string, rules Rules) Registration {
	path = strings.TrimSpace(path)
	c.rules[path] = rules
	value, _ := getPath(c.values, path)
	return Registration{
		Name:   path,
		Value:  DisplayValue(value),
		Errors: append([]string(nil), c.errors[path]...),
	}
}

// Unregister drops the rules of prefix and every path nested under it.
func (c *Controller) Unregister(prefix string) {
	for path := range c.rules {
		if hasPathPrefix(path, prefix) {
			delete(c.rules, path)
		}
	}
}

// Registered lists registered paths sorted.
func (c *Controller) Registered() []string {
	paths := make([]string, 0, len(c.rules))
	for path := range c.rules {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (c *Controller) Value(path string) (any, bool) {
	return getPath(c.values, path)
}

func (c *Controller) SetValue(path string, value any) error {
	return setPath(c.values, path, value)
}

// Values returns a deep copy of every stored value.
func (c *Controller) Values() map[string]any {
	return cloneValues(c.values)
}

// Fields lists the rows of the array at path with their stable keys.
func (c *Controller) Fields(path string) []Item {
	list := c.list(path)
	keys := c.ensureKeys(path, len(list))
	items := make([]Item, 0, len(list))
	for idx, raw := range list {
		value, _ := deepCopy(raw).(map[string]any)
		items = append(items, Item{Key: keys[idx], Index: idx, Value: value})
	}
	return items
}

// AppendArrayItem adds value to the end of the array at path, creating the
// array when the path is unset.
func (c *Controller) AppendArrayItem(path string, value map[string]any) error {
	current, exists := getPath(c.values, path)
	list, ok := current.([]any)
	if exists && current != nil && !ok {
		return fmt.Errorf("%w: %s", ErrNotArray, path)
	}
	keys := c.ensureKeys(path, len(list))
	list = append(list, deepCopy(value))
	if err := setPath(c.values, path, list); err != nil {
		return err
	}
	c.keys[path] = append(keys, c.newKey())
	return nil
}

// RemoveArrayItem removes the row at index, shifting later rows (and their
// registrations and errors) down by one.
func (c *Controller) RemoveArrayItem(path string, index int) error {
	current, exists := getPath(c.values, path)
	list, ok := current.([]any)
	if !exists || !ok {
		return fmt.Errorf("%w: %s", ErrNotArray, path)
	}
	if index < 0 || index >= len(list) {
		return fmt.Errorf("%w: %s[%d] (len %d)", ErrIndexOutOfRange, path, index, len(list))
	}

	keys := c.ensureKeys(path, len(list))
	next := make([]any, 0, len(list)-1)
	next = append(next, list[:index]...)
	next = append(next, list[index+1:]...)
	if err := setPath(c.values, path, next); err != nil {
		return err
	}

	nextKeys := make([]string, 0, len(keys)-1)
	nextKeys = append(nextKeys, keys[:index]...)
	c.keys[path] = append(nextKeys, keys[index+1:]...)

	c.rules = shiftAfterRemove(c.rules, path, index)
	c.errors = shiftAfterRemove(c.errors, path, index)
	return nil
}

// Errors returns a copy of the current field errors.
func (c *Controller) Errors() map[string][]string {
	return cloneErrors(c.errors)
}

// SetError attaches a message to path, replacing any previous one.
func (c *Controller) SetError(path, message string) {
	if strings.TrimSpace(message) == "" {
		delete(c.errors, path)
		return
	}
	c.errors[path] = []string{message}
}

func (c *Controller) ClearErrors() {
	c.errors = make(map[string][]string)
}

// Validate runs the rules of every registered path, replacing the error
// state. It reports whether all fields passed.
func (c *Controller) Validate() bool {
	c.errors = make(map[string][]string)
	for _, path := range c.Registered() {
		value, _ := getPath(c.values, path)
		if message := c.rules[path].evaluate(value); message != "" {
			c.errors[path] = []string{message}
		}
	}
	return len(c.errors) == 0
}

// Submit validates every registered field and, when all pass, calls handler
// with a snapshot of the values. A failed validation returns a
// *ValidationError and the handler is not called.
func (c *Controller) Submit(ctx context.Context, handler SubmitFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.submitCount++
	if !c.Validate() {
		return &ValidationError{Fields: c.Errors()}
	}
	if handler == nil {
		return nil
	}
	return handler(ctx, c.Values())
}

// Submitted reports whether Submit has been called at least once.
func (c *Controller) Submitted() bool {
	return c.submitCount > 0
}

// SubmitCount returns how many times Submit ran.
func (c *Controller) SubmitCount() int {
	return c.submitCount
}

func (c *Controller) list(path string) []any {
	current, _ := getPath(c.values, path)
	list, _ := current.([]any)
	return list
}

func (c *Controller) ensureKeys(path string, length int) []string {
	keys := c.keys[path]
	if len(keys) > length {
		keys = keys[:length]
	}
	for len(keys) < length {
		keys = append(keys, c.newKey())
	}
	c.keys[path] = keys
	return keys
}
