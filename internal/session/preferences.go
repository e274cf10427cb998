package session

import (
	"context"
	"errors"

	"github.com/jaekwang-park/taskapp/internal/model"
	"github.com/jaekwang-park/taskapp/internal/store"
)

type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// Preferences is UI state kept next to the token.
type Preferences struct {
	kv store.KV
}

func NewPreferences(kv store.KV) *Preferences {
	return &Preferences{kv: kv}
}

func (p *Preferences) Theme(ctx context.Context) Theme {
	v, err := p.kv.Get(ctx, store.KeyTheme)
	if err != nil || Theme(v) != ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func (p *Preferences) SetTheme(ctx context.Context, theme Theme) error {
	if theme != ThemeDark {
		theme = ThemeLight
	}
	return p.kv.Set(ctx, store.KeyTheme, string(theme))
}

func (p *Preferences) ToggleTheme(ctx context.Context) (Theme, error) {
	next := ThemeDark
	if p.Theme(ctx) == ThemeDark {
		next = ThemeLight
	}
	return next, p.SetTheme(ctx, next)
}

// LastCreatedTaskID is a fallback for attaching subtasks after a restart
// between creating a task and leaving the form.
func (p *Preferences) LastCreatedTaskID(ctx context.Context) (model.ID, error) {
	v, err := p.kv.Get(ctx, store.KeyLastCreatedTaskID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return model.ID(v), nil
}

func (p *Preferences) SetLastCreatedTaskID(ctx context.Context, id model.ID) error {
	return p.kv.Set(ctx, store.KeyLastCreatedTaskID, id.String())
}
