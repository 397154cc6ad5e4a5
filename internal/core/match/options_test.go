package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveOptions_Defaults(t *testing.T) {
	opts, err := ResolveOptions(Params{})

	require.NoError(t, err)
	assert.Equal(t, ModeNone, opts.NameMode)
	assert.Equal(t, ModeNone, opts.DescriptionMode)
	assert.Equal(t, ModeNone, opts.WodisMode)
	assert.Nil(t, opts.PurchaseToleranceDays)
	assert.False(t, opts.RequireAnyTextMatch)
	assert.Equal(t, DefaultLimit, opts.Limit)

	// All criteria disabled: callers must reject this before matching.
	assert.False(t, opts.HasActiveCriterion())
}

func TestHasActiveCriterion_ZeroValue(t *testing.T) {
	// A zero Options has every mode unset; unset counts as disabled just
	// like an explicit "none".
	assert.False(t, Options{}.HasActiveCriterion())
	assert.False(t, Options{NameMode: ModeNone, Limit: DefaultLimit}.HasActiveCriterion())
	assert.True(t, Options{NameMode: ModeExact}.HasActiveCriterion())

	tolerance := 0
	assert.True(t, Options{PurchaseToleranceDays: &tolerance}.HasActiveCriterion())
}

func TestResolveOptions_AutoPreset(t *testing.T) {
	// Everything else supplied alongside the preset must be ignored.
	opts, err := ResolveOptions(Params{
		Preset:                "auto",
		NameMode:              "exact",
		DescriptionMode:       "none",
		WodisMode:             "bogus",
		PurchaseToleranceDays: "nonsense",
		Limit:                 "billions",
		RequireAnyTextMatch:   "true",
	})

	require.NoError(t, err)
	assert.Equal(t, ModePrefix, opts.NameMode)
	assert.Equal(t, ModeContains, opts.DescriptionMode)
	assert.Equal(t, ModeExact, opts.WodisMode)
	require.NotNil(t, opts.PurchaseToleranceDays)
	assert.Equal(t, 30, *opts.PurchaseToleranceDays)
	assert.False(t, opts.RequireAnyTextMatch)
	assert.Equal(t, DefaultLimit, opts.Limit)
	assert.True(t, opts.HasActiveCriterion())
}

func TestResolveOptions_UnknownPreset(t *testing.T) {
	_, err := ResolveOptions(Params{Preset: "aggressive"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "preset")
}

func TestResolveOptions_InvalidEnums(t *testing.T) {
	_, err := ResolveOptions(Params{
		NameMode:        "fuzzy",
		DescriptionMode: "prefix", // valid for names, not for descriptions
		WodisMode:       "contains",
	})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
	assert.Contains(t, verr.Fields, "name_mode")
	assert.Contains(t, verr.Fields, "description_mode")
	assert.Contains(t, verr.Fields, "wodis_mode")
}

func TestResolveOptions_Tolerance(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		invalid bool
	}{
		{name: "zero", raw: "0", want: 0},
		{name: "max", raw: "365", want: 365},
		{name: "over max", raw: "366", invalid: true},
		{name: "negative", raw: "-1", invalid: true},
		{name: "not a number", raw: "soon", invalid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := ResolveOptions(Params{PurchaseToleranceDays: tt.raw})
			if tt.invalid {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, "purchase_tolerance_days")
				return
			}
			require.NoError(t, err)
			require.NotNil(t, opts.PurchaseToleranceDays)
			assert.Equal(t, tt.want, *opts.PurchaseToleranceDays)
		})
	}
}

func TestResolveOptions_LimitClampedNotRejected(t *testing.T) {
	opts, err := ResolveOptions(Params{NameMode: "exact", Limit: "10"})
	require.NoError(t, err)
	assert.Equal(t, MinLimit, opts.Limit)

	opts, err = ResolveOptions(Params{NameMode: "exact", Limit: "9999"})
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, opts.Limit)

	opts, err = ResolveOptions(Params{NameMode: "exact", Limit: "300"})
	require.NoError(t, err)
	assert.Equal(t, 300, opts.Limit)
}

func TestResolveOptions_LimitMustBeInteger(t *testing.T) {
	_, err := ResolveOptions(Params{NameMode: "exact", Limit: "many"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "limit")
}

func TestResolveOptions_RequireAnyTextMatch(t *testing.T) {
	for _, raw := range []string{"1", "true", "TRUE", "yes", "on"} {
		opts, err := ResolveOptions(Params{NameMode: "exact", RequireAnyTextMatch: raw})
		require.NoError(t, err)
		assert.True(t, opts.RequireAnyTextMatch, "raw=%q", raw)
	}
	for _, raw := range []string{"", "0", "false", "off", "maybe"} {
		opts, err := ResolveOptions(Params{NameMode: "exact", RequireAnyTextMatch: raw})
		require.NoError(t, err)
		assert.False(t, opts.RequireAnyTextMatch, "raw=%q", raw)
	}
}

func TestResolveOptions_ModesAreCaseInsensitive(t *testing.T) {
	opts, err := ResolveOptions(Params{NameMode: " Exact ", WodisMode: "EXACT"})

	require.NoError(t, err)
	assert.Equal(t, ModeExact, opts.NameMode)
	assert.Equal(t, ModeExact, opts.WodisMode)
}
