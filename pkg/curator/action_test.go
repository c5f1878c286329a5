package curator

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-curatorform/pkg/model"
)

func TestParseAction(t *testing.T) {
	cases := map[string]Action{
		"":                          {Kind: model.ActionSubmit},
		"submit":                    {Kind: model.ActionSubmit},
		"append-playlist":           {Kind: model.ActionAppendPlaylist},
		"remove-playlist:2":         {Kind: model.ActionRemovePlaylist, Index: 2},
		"append-social:tiktok":      {Kind: model.ActionAppendSocial, Platform: TikTok},
		"remove-social:1:instagram": {Kind: model.ActionRemoveSocial, Index: 1, Platform: Instagram},
	}
	for raw, want := range cases {
		got, err := ParseAction(raw)
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", raw, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Fatalf("ParseAction(%q) mismatch (-want +got):\n%s", raw, diff)
		}
	}
}

func TestParseActionRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"delete", "remove-playlist", "remove-playlist:-1", "remove-playlist:x", "append-playlist:3", "remove-social:0"} {
		if _, err := ParseAction(raw); !errors.Is(err, ErrUnknownAction) {
			t.Fatalf("ParseAction(%q): expected ErrUnknownAction, got %v", raw, err)
		}
	}
	if _, err := ParseAction("append-social:myspace"); !errors.Is(err, ErrUnknownPlatform) {
		t.Fatalf("expected ErrUnknownPlatform, got %v", err)
	}
}

func TestApplyAction(t *testing.T) {
	form, _, _ := newTestForm(t, Config{})
	steps := []string{"append-playlist", "append-social:facebook", "remove-playlist:1", "remove-social:0:facebook"}
	for _, raw := range steps {
		action, err := ParseAction(raw)
		if err != nil {
			t.Fatalf("ParseAction(%q): %v", raw, err)
		}
		if _, err := form.Apply(action); err != nil {
			t.Fatalf("Apply(%q): %v", raw, err)
		}
	}
	if len(form.Playlists()) != 1 || len(form.SocialLinks()) != 0 {
		t.Fatalf("unexpected state after actions: %d playlists, %d socials", len(form.Playlists()), len(form.SocialLinks()))
	}
	if _, err := form.Apply(Action{Kind: model.ActionSubmit}); !errors.Is(err, ErrUnknownAction) {
		t.Fatalf("Apply(submit) should be rejected, got %v", err)
	}
}
