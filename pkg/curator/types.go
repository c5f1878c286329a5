package curator

import (
	"fmt"
	"strings"
)

// Platform identifies a social network a curator can link to.
type Platform string

const (
	Instagram Platform = "instagram"
	YouTube   Platform = "youtube"
	Facebook  Platform = "facebook"
	Twitter   Platform = "twitter"
	TikTok    Platform = "tikTok"
)

// Platforms returns the full enumeration.
func Platforms() []Platform {
	return []Platform{Instagram, YouTube, Facebook, Twitter, TikTok}
}

// buttonOrder is the order the "add" buttons are offered in.
var buttonOrder = []Platform{Instagram, Facebook, TikTok, YouTube, Twitter}

// Valid reports whether p belongs to the enumeration.
func (p Platform) Valid() bool {
	switch p {
	case Instagram, YouTube, Facebook, Twitter, TikTok:
		return true
	default:
		return false
	}
}

// Label is the display name of the platform.
func (p Platform) Label() string {
	switch p {
	case Instagram:
		return "Instagram"
	case YouTube:
		return "YouTube"
	case Facebook:
		return "Facebook"
	case Twitter:
		return "Twitter"
	case TikTok:
		return "TikTok"
	default:
		return string(p)
	}
}

// ParsePlatform resolves a platform by name, ignoring case and surrounding
// whitespace.
func ParsePlatform(raw string) (Platform, error) {
	trimmed := strings.TrimSpace(raw)
	for _, p := range Platforms() {
		if strings.EqualFold(string(p), trimmed) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownPlatform, raw)
}

// Playlist is one playlist row. Cost is NaN until a value is entered.
type Playlist struct {
	Link string  `json:"link" yaml:"link" validate:"required"`
	Cost float64 `json:"cost" yaml:"cost"`
}

// SocialLink is one social network row.
type SocialLink struct {
	Name Platform `json:"name" yaml:"name" validate:"required,oneof=instagram youtube facebook twitter tikTok"`
	Link string   `json:"link" yaml:"link" validate:"required"`
}

// Profile is the value handed to the submit handler.
type Profile struct {
	Name        string       `json:"name" yaml:"name" validate:"required"`
	Email       string       `json:"email" yaml:"email" validate:"required"`
	Password    string       `json:"password,omitempty" yaml:"password,omitempty"`
	Phone       string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Origin      string       `json:"origin" yaml:"origin" validate:"required"`
	Playlists   []Playlist   `json:"playlists" yaml:"playlists" validate:"dive"`
	SocialLinks []SocialLink `json:"socialLinks" yaml:"socialLinks" validate:"unique=Name,dive"`
}

// Redacted returns a copy safe to log.
func (p Profile) Redacted() Profile {
	out := p
	if out.Password != "" {
		out.Password = "[redacted]"
	}
	return out
}

// PlaylistsSettings tunes the first playlist row.
type PlaylistsSettings struct {
	// RedirectOnRemoveFirst turns the first row's remove control into a link
	// to this target instead of deleting the row.
	RedirectOnRemoveFirst string `json:"redirectOnRemoveFirst,omitempty" yaml:"redirectOnRemoveFirst,omitempty" validate:"omitempty,uri"`
	// DenyButton hides the first row's remove control.
	DenyButton bool `json:"denyButton,omitempty" yaml:"denyButton,omitempty"`
}

// Config is the per-instance form configuration.
type Config struct {
	ID                string             `json:"id,omitempty" yaml:"id,omitempty"`
	Endpoint          string             `json:"endpoint,omitempty" yaml:"endpoint,omitempty" validate:"omitempty,uri"`
	PlaylistsSettings *PlaylistsSettings `json:"playlistsSettings,omitempty" yaml:"playlistsSettings,omitempty"`
	PasswordField     bool               `json:"passwordField,omitempty" yaml:"passwordField,omitempty"`
}

const (
	DefaultFormID   = "curator-information"
	DefaultEndpoint = "/curator"
)

func (c Config) withDefaults() Config {
	if strings.TrimSpace(c.ID) == "" {
		c.ID = DefaultFormID
	}
	if strings.TrimSpace(c.Endpoint) == "" {
		c.Endpoint = DefaultEndpoint
	}
	return c
}

func (c Config) denyFirstRemove() bool {
	return c.PlaylistsSettings != nil && c.PlaylistsSettings.DenyButton
}

func (c Config) redirectOnRemoveFirst() string {
	if c.PlaylistsSettings == nil {
		return ""
	}
	return strings.TrimSpace(c.PlaylistsSettings.RedirectOnRemoveFirst)
}
