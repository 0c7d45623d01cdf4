package analyzer

import (
	"context"
	"errors"
	"slices"
	"strings"
	"unicode"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

// ErrEmptyReport is returned when there is no text to analyze
var ErrEmptyReport = errors.New("report text is empty")

// Analysis is the structured reading of a free-text emergency report
type Analysis struct {
	Title    string
	Category model.EmergencyCategory
	Severity model.Severity
	Needs    []string
}

// Analyzer extracts structured fields from a civilian's report
type Analyzer interface {
	Analyze(ctx context.Context, text string) (Analysis, error)
}

const (
	maxTitleWords = 10
	minNeeds      = 3
	maxNeeds      = 5
)

type categoryRule struct {
	category model.EmergencyCategory
	keywords []string
}

// First matching rule wins
var categoryRules = []categoryRule{
	{model.CategoryFire, []string{"fire", "wildfire", "smoke", "burning", "blaze"}},
	{model.CategoryNaturalDisaster, []string{"flood", "earthquake", "cyclone", "landslide", "storm", "tsunami", "rainfall"}},
	{model.CategoryMedicalEmergency, []string{"outbreak", "cholera", "disease", "injur", "unconscious", "heart", "medical"}},
	{model.CategoryAccident, []string{"accident", "collision", "crash", "collapse", "pile-up"}},
	{model.CategoryViolence, []string{"attack", "riot", "shooting", "assault", "violence"}},
	{model.CategoryInfrastructure, []string{"power outage", "bridge", "water supply", "gas leak", "road blocked"}},
}

var criticalWords = []string{"trapped", "dead", "casualties", "collapsed", "spreading rapidly", "immediate", "critical"}
var highWords = []string{"injured", "evacuat", "severe", "urgent", "outbreak", "hundreds"}
var lowWords = []string{"minor", "contained", "under control", "no injuries"}

var categoryNeeds = map[model.EmergencyCategory][]string{
	model.CategoryFire:             {"fire trucks", "evacuation support", "burn care", "temporary shelter"},
	model.CategoryNaturalDisaster:  {"rescue boats", "food packets", "clean water", "temporary shelter", "medical supplies"},
	model.CategoryMedicalEmergency: {"medical team", "medical supplies", "clean water", "isolation ward"},
	model.CategoryAccident:         {"ambulances", "rescue equipment", "traffic management", "blood donors"},
	model.CategoryViolence:         {"police support", "medical team", "safe shelter", "counseling"},
	model.CategoryInfrastructure:   {"repair crew", "generators", "clean water", "traffic management"},
	model.CategoryOther:            {"situation assessment", "volunteers", "first aid"},
}

// KeywordAnalyzer is a deterministic, offline stand-in for a language model.
// It classifies a report by keyword rules.
type KeywordAnalyzer struct{}

var _ Analyzer = KeywordAnalyzer{}

func (KeywordAnalyzer) Analyze(ctx context.Context, text string) (Analysis, error) {
	if err := ctx.Err(); err != nil {
		return Analysis{}, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Analysis{}, ErrEmptyReport
	}

	lower := strings.ToLower(text)
	category := classify(lower)
	return Analysis{
		Title:    title(text),
		Category: category,
		Severity: severity(lower),
		Needs:    needs(lower, category),
	}, nil
}

func containsAny(s string, words []string) bool {
	return slices.ContainsFunc(words, func(w string) bool { return strings.Contains(s, w) })
}

func classify(lower string) model.EmergencyCategory {
	for _, rule := range categoryRules {
		if containsAny(lower, rule.keywords) {
			return rule.category
		}
	}
	return model.CategoryOther
}

func severity(lower string) model.Severity {
	switch {
	case containsAny(lower, criticalWords):
		return model.SeverityCritical
	case containsAny(lower, highWords):
		return model.SeverityHigh
	case containsAny(lower, lowWords):
		return model.SeverityLow
	}
	return model.SeverityMedium
}

// title is the report's first sentence, capped at maxTitleWords words
func title(text string) string {
	first := text
	if i := strings.IndexAny(text, ".!?\n"); i > 0 {
		first = text[:i]
	}
	words := strings.Fields(first)
	if len(words) > maxTitleWords {
		words = words[:maxTitleWords]
	}
	t := strings.Join(words, " ")
	r := []rune(t)
	if len(r) > 0 {
		r[0] = unicode.ToUpper(r[0])
	}
	return string(r)
}

// needs lists needs named in the report first, then fills from the category defaults
func needs(lower string, category model.EmergencyCategory) []string {
	var out []string
	add := func(n string) {
		if len(out) < maxNeeds && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}

	var mentioned []string
	for _, defaults := range categoryNeeds {
		for _, n := range defaults {
			if strings.Contains(lower, n) && !slices.Contains(mentioned, n) {
				mentioned = append(mentioned, n)
			}
		}
	}
	slices.Sort(mentioned)
	for _, n := range mentioned {
		add(n)
	}

	for _, n := range categoryNeeds[category] {
		add(n)
	}
	for _, n := range categoryNeeds[model.CategoryOther] {
		if len(out) >= minNeeds {
			break
		}
		add(n)
	}
	return out
}
