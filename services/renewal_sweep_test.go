package services

import (
	"testing"
	"time"

	"cuidarte/constants"
	"cuidarte/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sweepNow = time.Date(2024, time.June, 10, 8, 0, 0, 0, time.UTC)

func TestDueRemindersUncontractedRenewal(t *testing.T) {
	client := &models.Client{
		ID: 1, FirstName: "Sara", Surname: "Gil", Status: constants.ClientStatusActive,
		Program: models.Program{
			F2RenewalDate: datePtr(2024, time.June, 14), // en ventana, sin contratar
			F3RenewalDate: datePtr(2024, time.June, 12), RenewalF3Contracted: true,
		},
	}

	rems := dueReminders(client, sweepNow)
	require.Len(t, rems, 1)
	assert.Equal(t, "Renovación F2 pendiente: Sara Gil", rems[0].Title)
	assert.Equal(t, "renewal_reminder", rems[0].Type)
	assert.Contains(t, rems[0].Message, "14/06/2024")
}

func TestDueRemindersContractEnd(t *testing.T) {
	client := &models.Client{
		ID: 2, FirstName: "Leo", Status: constants.ClientStatusActive,
		ContractEndDate: datePtr(2024, time.June, 16),
	}

	rems := dueReminders(client, sweepNow)
	require.Len(t, rems, 1)
	assert.Equal(t, "Contrato a punto de vencer: Leo", rems[0].Title)
	assert.Equal(t, "contract_end_reminder", rems[0].Type)
	assert.Contains(t, rems[0].Message, "16/06/2024")
}

func TestDueRemindersWindowBounds(t *testing.T) {
	// Fuera de la ventana por ambos lados: nada que avisar
	past := &models.Client{ID: 3, FirstName: "Ana",
		ContractEndDate: datePtr(2024, time.June, 9),
		Program:         models.Program{F2RenewalDate: datePtr(2024, time.June, 8)}}
	far := &models.Client{ID: 4, FirstName: "Eva",
		ContractEndDate: datePtr(2024, time.June, 18),
		Program:         models.Program{F2RenewalDate: datePtr(2024, time.July, 1)}}

	assert.Empty(t, dueReminders(past, sweepNow))
	assert.Empty(t, dueReminders(far, sweepNow))

	// El día 7 justo aún entra
	edge := &models.Client{ID: 5, FirstName: "Mar",
		ContractEndDate: datePtr(2024, time.June, 17)}
	assert.Len(t, dueReminders(edge, sweepNow), 1)
}

func TestDueRemindersCombined(t *testing.T) {
	client := &models.Client{
		ID: 6, FirstName: "Iris", Status: constants.ClientStatusActive,
		ContractEndDate: datePtr(2024, time.June, 15),
		Program:         models.Program{F4RenewalDate: datePtr(2024, time.June, 13)},
	}

	rems := dueReminders(client, sweepNow)
	require.Len(t, rems, 2)
	assert.Equal(t, "renewal_reminder", rems[0].Type)
	assert.Equal(t, "contract_end_reminder", rems[1].Type)
}
