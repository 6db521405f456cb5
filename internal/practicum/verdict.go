package practicum

import (
	"fmt"

	apperrors "github.com/afanasev-ilia/check-status-homework-bot/internal/errors"
)

// Review statuses the API is documented to return.
const (
	StatusApproved  = "approved"
	StatusReviewing = "reviewing"
	StatusRejected  = "rejected"
)

// Verdicts maps a review status to its user-facing verdict sentence.
// The table is fixed for the process lifetime; a status outside it is a
// hard error, not a pass-through.
var Verdicts = map[string]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

const statusChangedTemplate = `Изменился статус проверки работы "%s". %s`

// ParseStatus renders the notification text for a homework record.
// It fails when the record is missing its name or status, or when the
// status is not in the verdict table.
func ParseStatus(homework Homework) (string, error) {
	if homework.HomeworkName == "" {
		return "", apperrors.NewMissingFieldError("homework record has no homework_name key")
	}

	if homework.Status == "" {
		return "", apperrors.NewMissingFieldError("homework record has no status key")
	}

	verdict, ok := Verdicts[homework.Status]
	if !ok {
		return "", apperrors.NewUnknownStatusError(
			fmt.Sprintf("undocumented homework status %q", homework.Status))
	}

	return fmt.Sprintf(statusChangedTemplate, homework.HomeworkName, verdict), nil
}
