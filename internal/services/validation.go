package services

import (
	"strings"
	"unicode/utf8"

	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/apperrors"
	"github.com/ahmetcoskunkizilkaya/moderation-backend/internal/models"
)

const MaxReasonLength = 500

func validateReason(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return apperrors.Validation("reason is required")
	}
	if utf8.RuneCountInString(reason) > MaxReasonLength {
		return apperrors.Validation("reason must be at most %d characters", MaxReasonLength)
	}
	return nil
}

func validateTarget(targetType models.TargetType, targetID int64) error {
	if !targetType.Valid() {
		return apperrors.Validation("invalid target type %q: must be POST, OPPORTUNITY, or USER", targetType)
	}
	if targetID <= 0 {
		return apperrors.Validation("target id must be positive")
	}
	return nil
}

func validateDuration(days int) error {
	if days < 1 || days > models.MaxSuspensionDays {
		return apperrors.Validation("duration must be between 1 and %d days", models.MaxSuspensionDays)
	}
	return nil
}

func validateID(name string, id int64) error {
	if id <= 0 {
		return apperrors.Validation("%s must be positive", name)
	}
	return nil
}
