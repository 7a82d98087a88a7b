package search

import "github.com/mrlokans/hikam/internal/config"

// OptionsFromConfig returns the default query options with the configured
// result limit and score threshold.
func OptionsFromConfig(cfg config.Search) Options {
	opts := DefaultOptions()
	if cfg.MaxResults > 0 {
		opts.MaxResults = cfg.MaxResults
	}
	if cfg.MinScore > 0 {
		opts.MinScore = cfg.MinScore
	}
	return opts
}

// WeightsFromConfig overrides the default weights with the positive values of cfg.
func WeightsFromConfig(cfg config.Search) Weights {
	w := DefaultWeights()
	override := func(dst *int, v int) {
		if v > 0 {
			*dst = v
		}
	}
	override(&w.Exact, cfg.ExactWeight)
	override(&w.Affix, cfg.AffixWeight)
	override(&w.Synonym, cfg.SynonymWeight)
	override(&w.ShortBonus, cfg.ShortBonus)
	override(&w.VeryShortBonus, cfg.VeryShortBonus)
	override(&w.ShortLength, cfg.ShortLength)
	override(&w.VeryShortLength, cfg.VeryShortLength)
	return w
}

// BindingConfigFromConfig builds the per-user binding settings.
func BindingConfigFromConfig(cfg config.Search) BindingConfig {
	weights := WeightsFromConfig(cfg)
	return BindingConfig{Delay: cfg.RebuildDelay, Weights: &weights}
}
