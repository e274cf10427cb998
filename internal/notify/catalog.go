package notify

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var locales embed.FS

// Catalog resolves message ids to localized text. Unknown languages fall
// back to English; unknown ids render as the id itself.
type Catalog struct {
	localizer *i18n.Localizer
}

func NewCatalog(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := fs.ReadDir(locales, "locales")
	if err != nil {
		return nil, fmt.Errorf("failed to list locales: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, err := bundle.LoadMessageFileFS(locales, path.Join("locales", e.Name())); err != nil {
			return nil, fmt.Errorf("failed to load locale %s: %w", e.Name(), err)
		}
	}

	return &Catalog{localizer: i18n.NewLocalizer(bundle, lang, language.English.String())}, nil
}

func (c *Catalog) Text(id string, data map[string]any) string {
	cfg := &i18n.LocalizeConfig{MessageID: id, TemplateData: data}
	if n, ok := data["Count"]; ok {
		cfg.PluralCount = n
	}
	msg, err := c.localizer.Localize(cfg)
	if err != nil {
		slog.Warn("translation not found", "message_id", id, "error", err)
		return id
	}
	return msg
}
