package report

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-attendance/internal/config"
	"github.com/tartampluch/go-attendance/internal/engine"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.json
var localeFS embed.FS

// LabelKeys lists every message ID the reports use.
var LabelKeys = []string{
	config.LKeyRoleNA,
	config.LKeyRoleMember,
	config.LKeyRoleLeader,
	config.LKeyRoleVisitor,
	config.LKeyActionText,
	config.LKeyActionPostCard,
	config.LKeyActionCall,
	config.LKeyActionVisit,
	config.LKeyColFirstName,
	config.LKeyColLastName,
	config.LKeyColMemberType,
	config.LKeyColAction,
	config.LKeyEventSummary,
}

// Labels renders roles, actions and column names for the output files.
type Labels struct {
	localizer *i18n.Localizer
}

// NewLabels loads the embedded label catalog and applies the optional
// override file (YAML or JSON mapping label IDs to text).
func NewLabels(overridePath string) (*Labels, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	if _, err := bundle.LoadMessageFileFS(localeFS, config.LabelLocaleFile); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocaleLoad, err)
	}
	slog.Debug(config.MsgLocaleLoaded,
		config.LogKeyComponent, config.CompLabels,
		config.LogKeyLang, config.LabelLanguage,
		config.LogKeyFile, config.LabelLocaleFile,
	)

	if overridePath != "" {
		if err := applyOverrides(bundle, overridePath); err != nil {
			return nil, err
		}
	}

	return &Labels{localizer: i18n.NewLocalizer(bundle, config.LabelLanguage)}, nil
}

// applyOverrides replaces catalog entries with the ones found in path.
// YAML is a superset of JSON, so one decoder serves both formats.
func applyOverrides(bundle *i18n.Bundle, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrLabelsFile, err)
	}

	var overrides map[string]string
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return fmt.Errorf("%s: %w", config.ErrLabelsFile, err)
	}

	msgs := make([]*i18n.Message, 0, len(overrides))
	for id, text := range overrides {
		if !slices.Contains(LabelKeys, id) {
			return fmt.Errorf("%s: %w: %q", config.ErrLabelsFile, errors.New(config.ErrLabelUnknown), id)
		}
		// go-i18n has no message for blank text and would render the raw ID.
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("%s: %w: %q", config.ErrLabelsFile, errors.New(config.ErrLabelEmpty), id)
		}
		msgs = append(msgs, &i18n.Message{ID: id, Other: text})
	}
	if err := bundle.AddMessages(language.English, msgs...); err != nil {
		return fmt.Errorf("%s: %w", config.ErrLabelsFile, err)
	}

	slog.Info(config.MsgLabelsOverride,
		config.LogKeyComponent, config.CompLabels,
		config.LogKeyFile, path,
		config.LogKeyCount, len(msgs),
	)
	return nil
}

// Get returns the text for a label ID, or the ID itself when missing.
func (l *Labels) Get(key string) string {
	return l.localize(&i18n.LocalizeConfig{MessageID: key})
}

func (l *Labels) localize(lc *i18n.LocalizeConfig) string {
	msg, err := l.localizer.Localize(lc)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompLabels,
			config.LogKeyKey, lc.MessageID,
			config.LogKeyError, err,
		)
		return lc.MessageID
	}
	return msg
}

// Role returns the display label of a membership role.
func (l *Labels) Role(r engine.Role) string {
	switch r {
	case engine.RoleMember:
		return l.Get(config.LKeyRoleMember)
	case engine.RoleLeader:
		return l.Get(config.LKeyRoleLeader)
	case engine.RoleVisitor:
		return l.Get(config.LKeyRoleVisitor)
	default:
		return l.Get(config.LKeyRoleNA)
	}
}

// Action returns the display label of an outreach action. ActionNone is blank.
func (l *Labels) Action(a engine.Action) string {
	switch a {
	case engine.ActionText:
		return l.Get(config.LKeyActionText)
	case engine.ActionPostCard:
		return l.Get(config.LKeyActionPostCard)
	case engine.ActionPhoneCall:
		return l.Get(config.LKeyActionCall)
	case engine.ActionVisit:
		return l.Get(config.LKeyActionVisit)
	default:
		return ""
	}
}

// EventSummary renders the calendar entry title for one outreach record.
func (l *Labels) EventSummary(action, name string) string {
	return l.localize(&i18n.LocalizeConfig{
		MessageID: config.LKeyEventSummary,
		TemplateData: map[string]string{
			"Action": action,
			"Name":   name,
		},
	})
}
