package get_nurse_visits

import (
	"github.com/m04kA/SMC-ActionCentreService/internal/service/visits/models"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// ToServiceRequest формирует запрос к сервису из path и query параметров
func ToServiceRequest(nurseID, dateStr string) (*models.ListByNurseRequest, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &models.ListByNurseRequest{
		NurseID: nurseID,
		Date:    date,
	}, nil
}
