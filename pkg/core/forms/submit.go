package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jakechorley/connect-care/pkg/core/analyzer"
	"github.com/jakechorley/connect-care/pkg/core/model"
	"github.com/jakechorley/connect-care/pkg/db"
)

// SubmissionError wraps a store failure during submission.
// The form that was submitted is unchanged and can be submitted again.
type SubmissionError struct {
	Kind model.Kind
	Err  error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("failed to submit %s: %v", e.Kind, e.Err)
}

func (e *SubmissionError) Unwrap() error { return e.Err }

// Submit validates form and, only if it is valid, creates the record in store
func Submit[T any](ctx context.Context, store db.Creator[T], form Form[T], logger *zap.Logger) (T, error) {
	var zero T

	draft, err := form.Draft()
	if err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			logger.Debug("Form rejected", zap.String("kind", string(form.Kind())), zap.Error(err))
		}
		return zero, err
	}

	created, err := store.Create(ctx, draft)
	if err != nil {
		logger.Warn("Submission failed", zap.String("kind", string(form.Kind())), zap.Error(err))
		return zero, &SubmissionError{Kind: form.Kind(), Err: err}
	}

	logger.Info("Record submitted", zap.String("kind", string(form.Kind())))
	return created, nil
}

// Assist fills the blank title, category, severity and priority needs of form from an
// analysis of its description. Fields the user already filled are left alone.
func Assist(ctx context.Context, a analyzer.Analyzer, form *EmergencyForm) error {
	result, err := a.Analyze(ctx, form.Description)
	if err != nil {
		return fmt.Errorf("failed to analyze report: %w", err)
	}

	if strings.TrimSpace(form.Title) == "" {
		form.Title = result.Title
	}
	if strings.TrimSpace(form.Category) == "" {
		form.Category = string(result.Category)
	}
	if strings.TrimSpace(form.Severity) == "" {
		form.Severity = string(result.Severity)
	}
	if strings.TrimSpace(form.PriorityNeeds) == "" {
		form.PriorityNeeds = strings.Join(result.Needs, ", ")
	}
	return nil
}
