package curator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-curatorform/pkg/model"
)

// Action is a parsed button value.
type Action struct {
	Kind     model.ActionKind
	Index    int
	Platform Platform
}

// ParseAction decodes the value posted under ActionField. An empty value is
// a plain submit.
func ParseAction(raw string) (Action, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Action{Kind: model.ActionSubmit}, nil
	}
	parts := strings.Split(raw, ":")
	kind := model.ActionKind(parts[0])

	switch kind {
	case model.ActionSubmit, model.ActionAppendPlaylist:
		if len(parts) != 1 {
			break
		}
		return Action{Kind: kind}, nil
	case model.ActionRemovePlaylist:
		if len(parts) != 2 {
			break
		}
		index, err := parseIndex(parts[1])
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: kind, Index: index}, nil
	case model.ActionAppendSocial:
		if len(parts) != 2 {
			break
		}
		p, err := ParsePlatform(parts[1])
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: kind, Platform: p}, nil
	case model.ActionRemoveSocial:
		if len(parts) != 3 {
			break
		}
		index, err := parseIndex(parts[1])
		if err != nil {
			return Action{}, err
		}
		p, err := ParsePlatform(parts[2])
		if err != nil {
			return Action{}, err
		}
		return Action{Kind: kind, Index: index, Platform: p}, nil
	}
	return Action{}, fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

func parseIndex(raw string) (int, error) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 0 {
		return 0, fmt.Errorf("%w: bad index %q", ErrUnknownAction, raw)
	}
	return index, nil
}

// Apply runs a non-submit action against the form. The returned string is a
// redirect target when removing the first playlist redirects instead.
func (f *Form) Apply(action Action) (string, error) {
	switch action.Kind {
	case model.ActionAppendPlaylist:
		return "", f.AppendPlaylist()
	case model.ActionRemovePlaylist:
		return f.RemovePlaylist(action.Index)
	case model.ActionAppendSocial:
		return "", f.AppendSocial(action.Platform)
	case model.ActionRemoveSocial:
		return "", f.RemoveSocial(action.Index, action.Platform)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownAction, action.Kind)
	}
}
