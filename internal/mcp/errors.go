package mcp

import (
	"errors"
	"fmt"

	"github.com/rpggio/workbench/internal/dates"
	"github.com/rpggio/workbench/internal/domain/calendar"
	"github.com/rpggio/workbench/internal/domain/knowledge"
	"github.com/rpggio/workbench/internal/domain/project"
	"github.com/rpggio/workbench/internal/domain/security"
	"github.com/rpggio/workbench/internal/domain/timeledger"
)

// APIError is the text a failed tool call carries back to the agent.
type APIError struct {
	Code         string
	Message      string
	RecoveryHint string
	err          error
}

func (e *APIError) Error() string {
	if e.RecoveryHint == "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s. %s", e.Code, e.Message, e.RecoveryHint)
}

func (e *APIError) Unwrap() error {
	return e.err
}

// MapError maps domain errors to tool error codes. The message keeps the
// domain's own wording, which already names the offending value.
func MapError(err error) *APIError {
	if err == nil {
		return nil
	}
	apiErr := &APIError{Message: err.Error(), err: err}
	switch {
	case errors.Is(err, project.ErrUnknownProject):
		apiErr.Code = "UNKNOWN_PROJECT"
		apiErr.RecoveryHint = "Call list_projects for valid codes"
	case errors.Is(err, timeledger.ErrInvalidHours):
		apiErr.Code = "INVALID_HOURS"
		apiErr.RecoveryHint = "Use a multiple of 0.5 between 0.5 and 8.0"
	case errors.Is(err, timeledger.ErrDailyCapExceeded):
		apiErr.Code = "DAILY_CAP_EXCEEDED"
		apiErr.RecoveryHint = "Log at most the remaining capacity or choose another date"
	case errors.Is(err, knowledge.ErrArticleNotFound), errors.Is(err, security.ErrIssueNotFound):
		apiErr.Code = "NOT_FOUND"
		apiErr.RecoveryHint = "Check the id with a list or search tool"
	case errors.Is(err, dates.ErrInvalidDate):
		apiErr.Code = "INVALID_DATE"
		apiErr.RecoveryHint = "Dates use the YYYY-MM-DD format"
	case errors.Is(err, calendar.ErrInvalidInput), errors.Is(err, knowledge.ErrEmptyQuery):
		apiErr.Code = "INVALID_ARGUMENT"
	default:
		return nil
	}
	return apiErr
}

// toolError converts err for return from a tool handler. Unmapped errors
// pass through unchanged.
func toolError(err error) error {
	if apiErr := MapError(err); apiErr != nil {
		return apiErr
	}
	return err
}
