package linkml

import (
	"embed"

	"github.com/kaptinlin/go-i18n"
)

//go:embed locales/*.json
var localesFS embed.FS

// LocaleBundle loads the embedded issue-message catalogs: one JSON file
// per locale, keyed by issue code (missing_required_slot,
// unique_key_violation, ...). The English catalog mirrors the stable
// message strings reports carry by default; a non-default locale takes
// effect only on an Engine built WithLocalizer.
func LocaleBundle() (*i18n.I18n, error) {
	bundle := i18n.NewBundle(
		i18n.WithDefaultLocale("en"),
		i18n.WithLocales("en", "zh-Hans"),
	)
	err := bundle.LoadFS(localesFS, "locales/*.json")
	return bundle, err
}
