// Package etl runs the prompt pipeline: a raw free-text strategy prompt
// goes through the rule mapper, the transform stage, and both
// validators, producing a structured result in one pass.
package etl

import (
	"strata/internal/config"
	"strata/internal/errors"
	"strata/internal/rules"
	"strata/internal/strategy"
	"strata/internal/validate"
)

// Result bundles everything one pipeline pass produces for a prompt.
type Result struct {
	Raw           *strategy.RawPrompt         `json:"raw"`
	Transformed   *strategy.TransformedPrompt `json:"transformed"`
	Compatibility strategy.CompatReport       `json:"compatibility"`
	Quality       strategy.QualityReport      `json:"quality"`
}

// Pipeline holds the rule mapper and scoring knobs shared by every run.
// A Pipeline is safe for concurrent use; runs share no mutable state.
type Pipeline struct {
	mapper           *rules.Mapper
	targetConfidence float64
}

// New builds a pipeline over the given mapper. A non-positive
// targetConfidence falls back to the default quality target.
func New(m *rules.Mapper, targetConfidence float64) *Pipeline {
	if targetConfidence <= 0 {
		targetConfidence = validate.DefaultTargetConfidence
	}
	return &Pipeline{mapper: m, targetConfidence: targetConfidence}
}

// Default returns a pipeline over the built-in pattern tables.
func Default() *Pipeline {
	return New(rules.Default(), validate.DefaultTargetConfidence)
}

// FromConfig builds a pipeline with the user's extra patterns layered on
// top of the built-in tables. A bad pattern fails the whole build so
// misconfiguration surfaces at startup rather than at match time.
func FromConfig(cfg *config.Config) (*Pipeline, error) {
	reg := rules.DefaultRegistry()
	for _, p := range cfg.ExtraPatterns {
		cat, err := rules.ParseCategory(p.Category)
		if err != nil {
			return nil, err
		}
		if err := reg.Register(cat, p.Key, p.Pattern, p.Weight); err != nil {
			return nil, err
		}
	}
	mapper, err := reg.Build()
	if err != nil {
		return nil, err
	}
	return New(mapper, cfg.TargetConfidence), nil
}

// Process runs the full pipeline on one raw prompt. Empty text is not an
// error; it yields a fully defaulted transform with confidence 0 and an
// incompatible verdict. Only a nil prompt is rejected.
func (p *Pipeline) Process(raw *strategy.RawPrompt) (*Result, error) {
	if raw == nil {
		return nil, errors.NewInvalidInput("prompt is required")
	}

	transformed := Transform(p.mapper, raw)
	return &Result{
		Raw:           raw,
		Transformed:   transformed,
		Compatibility: validate.Compatibility(transformed),
		Quality:       validate.Quality(transformed, p.targetConfidence),
	}, nil
}
