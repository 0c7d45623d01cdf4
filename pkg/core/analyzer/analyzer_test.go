package analyzer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jakechorley/connect-care/pkg/core/model"
)

func TestKeywordAnalyzer_Analyze(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		category model.EmergencyCategory
		severity model.Severity
	}{
		{
			name:     "flood",
			text:     "Heavy rainfall has caused severe flooding in our colony. Families are stranded on rooftops.",
			category: model.CategoryNaturalDisaster,
			severity: model.SeverityHigh,
		},
		{
			name:     "fire spreading",
			text:     "Wildfire spreading rapidly near the village school",
			category: model.CategoryFire,
			severity: model.SeverityCritical,
		},
		{
			name:     "minor accident",
			text:     "Minor collision at the junction, nobody hurt.",
			category: model.CategoryAccident,
			severity: model.SeverityLow,
		},
		{
			name:     "unclassified",
			text:     "Something strange is happening at the market",
			category: model.CategoryOther,
			severity: model.SeverityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := KeywordAnalyzer{}.Analyze(context.Background(), tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.category, got.Category)
			assert.Equal(t, tt.severity, got.Severity)
			assert.GreaterOrEqual(t, len(got.Needs), minNeeds)
			assert.LessOrEqual(t, len(got.Needs), maxNeeds)
			assert.True(t, got.Category.IsValid())
			assert.True(t, got.Severity.IsValid())
		})
	}
}

func TestKeywordAnalyzer_Title(t *testing.T) {
	got, err := KeywordAnalyzer{}.Analyze(context.Background(),
		"a very long first sentence that keeps going well past the ten word limit here. Second sentence.")
	require.NoError(t, err)
	assert.Equal(t, "A very long first sentence that keeps going well past", got.Title)
}

func TestKeywordAnalyzer_MentionedNeedsFirst(t *testing.T) {
	got, err := KeywordAnalyzer{}.Analyze(context.Background(), "Building collapse, we need generators and clean water")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryAccident, got.Category)
	require.GreaterOrEqual(t, len(got.Needs), 2)
	assert.Equal(t, []string{"clean water", "generators"}, got.Needs[:2])
}

func TestKeywordAnalyzer_Errors(t *testing.T) {
	_, err := KeywordAnalyzer{}.Analyze(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrEmptyReport)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = KeywordAnalyzer{}.Analyze(ctx, "fire")
	assert.ErrorIs(t, err, context.Canceled)
}
