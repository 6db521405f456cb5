package practicum

import (
	apperrors "github.com/afanasev-ilia/check-status-homework-bot/internal/errors"
)

// CheckResponse checks a decoded API response against the documented shape
// and returns its homeworks sequence. Validation is a hard gate: a response
// missing either required key is rejected wholesale, never coerced to an
// empty list. The caller reads CurrentDate itself, since the cursor must
// advance even when homeworks is empty.
func CheckResponse(resp *StatusesResponse) ([]Homework, error) {
	if resp == nil {
		return nil, apperrors.NewMalformedResponseError("homework API response is empty", nil)
	}

	if resp.Homeworks == nil {
		return nil, apperrors.NewMalformedResponseError("homework API response has no homeworks key", nil)
	}

	if resp.CurrentDate == nil {
		return nil, apperrors.NewMalformedResponseError("homework API response has no current_date key", nil)
	}

	return resp.Homeworks, nil
}
