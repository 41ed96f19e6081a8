package validator

import (
	"testing"

	"cuidarte/constants"
	"cuidarte/models"

	"github.com/stretchr/testify/assert"
)

func TestValidateMarketingExpense(t *testing.T) {
	valid := models.MarketingExpense{
		PeriodMonth: 3, PeriodYear: 2024,
		Channel: constants.ChannelInstagramAds, Amount: 100,
	}
	assert.NoError(t, ValidateMarketingExpense(&valid))

	badMonth := valid
	badMonth.PeriodMonth = 13
	assert.Error(t, ValidateMarketingExpense(&badMonth))

	badChannel := valid
	badChannel.Channel = "tiktok"
	assert.Error(t, ValidateMarketingExpense(&badChannel))

	negative := valid
	negative.Amount = -5
	assert.Error(t, ValidateMarketingExpense(&negative))
}

func TestValidateAnnouncement(t *testing.T) {
	valid := models.Announcement{
		Title: "Aviso", Message: "Contenido",
		TargetAudience: constants.AudienceAllTeam,
	}
	assert.NoError(t, ValidateAnnouncement(&valid))

	noTitle := valid
	noTitle.Title = ""
	assert.Error(t, ValidateAnnouncement(&noTitle))

	badAudience := valid
	badAudience.TargetAudience = "everyone"
	assert.Error(t, ValidateAnnouncement(&badAudience))

	coachID := uint(3)
	filterOnAllTeam := valid
	filterOnAllTeam.CoachFilter = &coachID
	assert.Error(t, ValidateAnnouncement(&filterOnAllTeam))

	filterOnCoaches := valid
	filterOnCoaches.TargetAudience = constants.AudienceOnlyCoaches
	filterOnCoaches.CoachFilter = &coachID
	assert.NoError(t, ValidateAnnouncement(&filterOnCoaches))

	badPriority := valid
	badPriority.Priority = 5
	assert.Error(t, ValidateAnnouncement(&badPriority))
}

func TestValidateUser(t *testing.T) {
	valid := models.User{Email: "ana@cuid-arte.com", Password: "secreto1", Role: constants.RoleCoach}
	assert.NoError(t, ValidateUser(&valid))

	badEmail := valid
	badEmail.Email = "no-es-email"
	assert.Error(t, ValidateUser(&badEmail))

	shortPassword := valid
	shortPassword.Password = "abc"
	assert.Error(t, ValidateUser(&shortPassword))

	badRole := valid
	badRole.Role = 9
	assert.Error(t, ValidateUser(&badRole))
}

func TestValidateScoringRule(t *testing.T) {
	assert.NoError(t, ValidateScoringRule(&models.ScoringRule{FieldName: "situacion", ValueMatch: "x", Points: 5}))
	assert.Error(t, ValidateScoringRule(&models.ScoringRule{ValueMatch: "x"}))
	assert.Error(t, ValidateScoringRule(&models.ScoringRule{FieldName: "situacion"}))
}
