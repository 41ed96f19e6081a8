package validator

import (
	"regexp"

	"cuidarte/constants"
	"cuidarte/errors"
	"cuidarte/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateUser valida los datos de un usuario del equipo
func ValidateUser(user *models.User) error {
	if user.Email == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "El email no puede estar vacío", nil)
	}

	if !isValidEmail(user.Email) {
		return errors.NewAppError(errors.ErrCodeInvalidEmail, "El email no es válido", nil)
	}

	if user.Password == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "La contraseña no puede estar vacía", nil)
	}

	if len(user.Password) < 6 {
		return errors.NewAppError(errors.ErrCodeValidation, "La contraseña debe tener al menos 6 caracteres", nil)
	}

	if user.Role < constants.RoleDireccion || user.Role > constants.RoleSetter {
		return errors.NewAppError(errors.ErrCodeInvalidRole, "El rol no es válido", nil)
	}

	return nil
}

// ValidateMarketingExpense valida un gasto de marketing
func ValidateMarketingExpense(expense *models.MarketingExpense) error {
	if expense.PeriodMonth < 1 || expense.PeriodMonth > 12 {
		return errors.NewAppError(errors.ErrCodeInvalidPeriod, "El mes debe estar entre 1 y 12", nil)
	}

	if expense.PeriodYear < 2020 {
		return errors.NewAppError(errors.ErrCodeInvalidPeriod, "El año no es válido", nil)
	}

	if expense.Amount < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "El importe no puede ser negativo", nil)
	}

	valid := false
	for _, ch := range constants.MarketingChannels {
		if expense.Channel == ch {
			valid = true
			break
		}
	}
	if !valid {
		return errors.NewAppError(errors.ErrCodeInvalidChannel, "Canal de marketing desconocido: "+expense.Channel, nil)
	}

	return nil
}

// ValidateAnnouncement valida un anuncio antes de publicarlo
func ValidateAnnouncement(a *models.Announcement) error {
	if a.Title == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "El título no puede estar vacío", nil)
	}

	if a.Message == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "El mensaje no puede estar vacío", nil)
	}

	switch a.TargetAudience {
	case constants.AudienceAllTeam, constants.AudienceOnlyCoaches, constants.AudienceOnlyClosers:
	default:
		return errors.NewAppError(errors.ErrCodeValidation, "Audiencia desconocida: "+a.TargetAudience, nil)
	}

	if a.CoachFilter != nil && a.TargetAudience != constants.AudienceOnlyCoaches {
		return errors.NewAppError(errors.ErrCodeValidation, "coach_filter solo aplica a only_coaches", nil)
	}

	if a.Priority < 0 || a.Priority > 2 {
		return errors.NewAppError(errors.ErrCodeValidation, "La prioridad debe estar entre 0 y 2", nil)
	}

	return nil
}

// ValidateScoringRule valida una regla de scoring de leads
func ValidateScoringRule(rule *models.ScoringRule) error {
	if rule.FieldName == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "field_name no puede estar vacío", nil)
	}

	if rule.ValueMatch == "" {
		return errors.NewAppError(errors.ErrCodeRequiredField, "value_match no puede estar vacío", nil)
	}

	return nil
}

// ValidateAmount valida un importe
func ValidateAmount(amount float64) error {
	if amount < 0 {
		return errors.NewAppError(errors.ErrCodeInvalidAmount, "El importe no puede ser negativo", nil)
	}
	return nil
}
