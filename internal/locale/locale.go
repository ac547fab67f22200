// Package locale renders calendar readings in Thai or English.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/zapponejosh/thai-calendar-api/internal/calendar"
)

//go:embed locales/*.json
var localeFS embed.FS

// Supported language codes.
const (
	Thai    = "th"
	English = "en"
)

// Reading is a localized view of a calendar.ThaiDate.
type Reading struct {
	Language     string `json:"language"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	Phase        string `json:"phase"`
	LunarDay     int    `json:"lunar_day"`
	LunarMonth   int    `json:"lunar_month"`
	Zodiac       string `json:"zodiac"`
	MinorEra     int    `json:"minor_era"`
	Sok          string `json:"sok"`
	SolarWeekday string `json:"solar_weekday"`
	LunarWeekday string `json:"lunar_weekday"`
	HolyDay      bool   `json:"holy_day"`
	Summary      string `json:"summary"`
}

// Translator holds the message bundle. It is safe for concurrent use.
type Translator struct {
	bundle    *i18n.Bundle
	languages []string
	matcher   language.Matcher
	fallback  string
}

// New loads the embedded locale files. fallback is used when a requested
// language is not available.
func New(fallback string) (*Translator, error) {
	bundle := i18n.NewBundle(language.Thai)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, fmt.Errorf("read locales: %w", err)
	}

	var (
		langs []string
		tags  []language.Tag
	)
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			continue
		}

		mf, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		base, _ := mf.Tag.Base()
		langs = append(langs, base.String())
		tags = append(tags, mf.Tag)

		slog.Debug("locale loaded",
			slog.String("file", name),
			slog.String("lang", mf.Tag.String()),
			slog.Int("messages", len(mf.Messages)),
		)
	}

	t := &Translator{
		bundle:    bundle,
		languages: langs,
		matcher:   language.NewMatcher(tags),
		fallback:  fallback,
	}
	if !t.Supports(fallback) {
		return nil, fmt.Errorf("fallback language %q not available (have %s)",
			fallback, strings.Join(langs, ", "))
	}
	return t, nil
}

// Languages lists the loaded language codes.
func (t *Translator) Languages() []string {
	return append([]string(nil), t.languages...)
}

// Supports reports whether lang has a locale file.
func (t *Translator) Supports(lang string) bool {
	for _, l := range t.languages {
		if l == lang {
			return true
		}
	}
	return false
}

// Match picks the best supported language for an explicit code or an
// Accept-Language header value.
func (t *Translator) Match(accept string) string {
	if accept == "" {
		return t.fallback
	}
	prefs, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(prefs) == 0 {
		return t.fallback
	}
	_, idx, conf := t.matcher.Match(prefs...)
	if conf == language.No {
		return t.fallback
	}
	return t.languages[idx]
}

// Describe renders td in lang.
func (t *Translator) Describe(td *calendar.ThaiDate, lang string) Reading {
	l := i18n.NewLocalizer(t.bundle, lang, t.fallback)
	c := td.Civil()

	r := Reading{
		Language:     t.Match(lang),
		Date:         c.Time().Format(calendar.DateLayout),
		Time:         c.Time().Format(calendar.TimeLayout),
		Phase:        t.localize(l, "phase_"+td.Phase().Key(), nil),
		LunarDay:     td.LunarDay(),
		LunarMonth:   td.LunarMonth(),
		Zodiac:       t.localize(l, "zodiac_"+td.Zodiac().Key(), nil),
		MinorEra:     td.MinorEra(),
		Sok:          t.localize(l, fmt.Sprintf("sok_%d", td.Sok()), nil),
		SolarWeekday: t.localize(l, "weekday_"+td.SolarWeekday().Key(), nil),
		LunarWeekday: t.localize(l, "weekday_"+td.LunarWeekday().Key(), nil),
		HolyDay:      td.IsHolyDay(),
	}
	r.Summary = t.localize(l, "summary", map[string]any{
		"Weekday":  r.LunarWeekday,
		"Phase":    r.Phase,
		"Day":      r.LunarDay,
		"Month":    r.LunarMonth,
		"Zodiac":   r.Zodiac,
		"MinorEra": r.MinorEra,
	})
	return r
}

// HolyDayTitle is the short event title for an observance day.
func (t *Translator) HolyDayTitle(td *calendar.ThaiDate, lang string) string {
	l := i18n.NewLocalizer(t.bundle, lang, t.fallback)
	return t.localize(l, "holy_day_summary", map[string]any{
		"Phase": t.localize(l, "phase_"+td.Phase().Key(), nil),
		"Day":   td.LunarDay(),
		"Month": td.LunarMonth(),
	})
}

// Message looks up a plain message by ID.
func (t *Translator) Message(id, lang string) string {
	return t.localize(i18n.NewLocalizer(t.bundle, lang, t.fallback), id, nil)
}

func (t *Translator) localize(l *i18n.Localizer, id string, data map[string]any) string {
	msg, err := l.Localize(&i18n.LocalizeConfig{MessageID: id, TemplateData: data})
	if err != nil {
		slog.Debug("translation missing", slog.String("key", id), slog.Any("error", err))
		return id
	}
	return msg
}
