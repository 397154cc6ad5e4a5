package match

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Text match modes. Wodis numbers only support none/exact, descriptions
// none/exact/contains, names all four.
const (
	ModeNone     = "none"
	ModeExact    = "exact"
	ModePrefix   = "prefix"
	ModeContains = "contains"
)

const (
	PresetAuto = "auto"

	DefaultLimit      = 250
	MinLimit          = 25
	MaxLimit          = 500
	MaxToleranceDays  = 365
	autoToleranceDays = 30
)

var (
	nameModes        = []string{ModeNone, ModeExact, ModePrefix, ModeContains}
	descriptionModes = []string{ModeNone, ModeExact, ModeContains}
	wodisModes       = []string{ModeNone, ModeExact}
)

// enabled reports whether a mode field activates its criterion. The zero value
// counts as disabled, so an Options literal that only sets some fields behaves
// the same as a resolved configuration.
func enabled(mode string) bool {
	return mode != "" && mode != ModeNone
}

// Options is a resolved, validated match configuration.
type Options struct {
	NameMode              string `json:"name_mode"`
	DescriptionMode       string `json:"description_mode"`
	WodisMode             string `json:"wodis_mode"`
	PurchaseToleranceDays *int   `json:"purchase_tolerance_days,omitempty"`
	RequireAnyTextMatch   bool   `json:"require_any_text_match"`
	Limit                 int    `json:"limit"`
}

// HasActiveCriterion reports whether at least one matching criterion is
// enabled. Callers must reject a configuration without any active criterion
// before running a matching pass.
func (o Options) HasActiveCriterion() bool {
	return enabled(o.NameMode) ||
		enabled(o.DescriptionMode) ||
		enabled(o.WodisMode) ||
		o.PurchaseToleranceDays != nil
}

// AutoOptions is the fixed configuration behind the "auto" preset.
func AutoOptions() Options {
	tolerance := autoToleranceDays
	return Options{
		NameMode:              ModePrefix,
		DescriptionMode:       ModeContains,
		WodisMode:             ModeExact,
		PurchaseToleranceDays: &tolerance,
		RequireAnyTextMatch:   false,
		Limit:                 DefaultLimit,
	}
}

// Params carries the raw, untyped request parameters for one matching run.
type Params struct {
	Preset                string
	NameMode              string
	DescriptionMode       string
	WodisMode             string
	PurchaseToleranceDays string
	Limit                 string
	RequireAnyTextMatch   string
}

// IsAutoPreset reports whether the raw parameters select the auto preset.
func (p Params) IsAutoPreset() bool {
	return strings.EqualFold(strings.TrimSpace(p.Preset), PresetAuto)
}

// ValidationError reports one message per invalid request field, keyed by the
// field name the client sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid match configuration: " + strings.Join(parts, "; ")
}

func (e *ValidationError) add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	e.Fields[field] = message
}

// ErrNoActiveCriterion is the aggregate error for a configuration where every
// criterion is disabled.
func ErrNoActiveCriterion() *ValidationError {
	return &ValidationError{Fields: map[string]string{
		"criteria": "enable at least one criterion (name, description, inventory number or purchase date tolerance)",
	}}
}

// ResolveOptions turns raw request parameters into a validated Options value.
// The auto preset short-circuits and ignores every other parameter. Invalid
// enum values and an out-of-range or non-integer tolerance are rejected with
// one error per field; an out-of-range limit is clamped into [MinLimit,
// MaxLimit] instead of rejected. The at-least-one-criterion invariant is NOT
// checked here; it depends on the resolved state and belongs to the caller.
func ResolveOptions(p Params) (Options, error) {
	if preset := strings.TrimSpace(p.Preset); preset != "" {
		if !p.IsAutoPreset() {
			return Options{}, &ValidationError{Fields: map[string]string{
				"preset": fmt.Sprintf("unknown preset %q", preset),
			}}
		}
		return AutoOptions(), nil
	}

	verr := &ValidationError{}
	opts := Options{Limit: DefaultLimit}

	opts.NameMode = resolveMode(verr, "name_mode", p.NameMode, nameModes)
	opts.DescriptionMode = resolveMode(verr, "description_mode", p.DescriptionMode, descriptionModes)
	opts.WodisMode = resolveMode(verr, "wodis_mode", p.WodisMode, wodisModes)
	opts.PurchaseToleranceDays = resolveTolerance(verr, p.PurchaseToleranceDays)
	opts.Limit = resolveLimit(verr, p.Limit)
	opts.RequireAnyTextMatch = truthy(p.RequireAnyTextMatch)

	if len(verr.Fields) > 0 {
		return Options{}, verr
	}
	return opts, nil
}

func resolveMode(verr *ValidationError, field, raw string, allowed []string) string {
	value := strings.TrimSpace(strings.ToLower(raw))
	if value == "" {
		return ModeNone
	}
	for _, mode := range allowed {
		if value == mode {
			return value
		}
	}
	verr.add(field, "must be one of "+strings.Join(allowed, ", "))
	return ModeNone
}

func resolveTolerance(verr *ValidationError, raw string) *int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return nil
	}
	days, err := strconv.Atoi(value)
	if err != nil {
		verr.add("purchase_tolerance_days", "must be an integer")
		return nil
	}
	if days < 0 || days > MaxToleranceDays {
		verr.add("purchase_tolerance_days", fmt.Sprintf("must be between 0 and %d", MaxToleranceDays))
		return nil
	}
	return &days
}

func resolveLimit(verr *ValidationError, raw string) int {
	value := strings.TrimSpace(raw)
	if value == "" {
		return DefaultLimit
	}
	limit, err := strconv.Atoi(value)
	if err != nil {
		verr.add("limit", "must be an integer")
		return DefaultLimit
	}
	if limit < MinLimit {
		return MinLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

func truthy(raw string) bool {
	switch strings.TrimSpace(strings.ToLower(raw)) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
