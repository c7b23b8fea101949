package get_nurses

import "github.com/m04kA/SMC-ActionCentreService/internal/domain"

// NurseResponse медсестра с рабочим окном в миллисекундах от полуночи
type NurseResponse struct {
	ID             string `json:"id"`
	CentreID       string `json:"centreId"`
	Name           string `json:"name"`
	WorkdayStartMs int64  `json:"workdayStartMs"`
	WorkdayEndMs   int64  `json:"workdayEndMs"`
}

// NursesResponse HTTP response model
type NursesResponse struct {
	CentreID string          `json:"centreId"`
	Nurses   []NurseResponse `json:"nurses"`
}

// FromProviders конвертирует медсестёр в HTTP response
func FromProviders(centreID string, providers []domain.Provider) *NursesResponse {
	nurses := make([]NurseResponse, len(providers))
	for i, p := range providers {
		nurses[i] = NurseResponse{
			ID:             p.ID,
			CentreID:       p.CentreID,
			Name:           p.Name,
			WorkdayStartMs: p.Window.StartOffsetMillis,
			WorkdayEndMs:   p.Window.EndOffsetMillis,
		}
	}

	return &NursesResponse{CentreID: centreID, Nurses: nurses}
}
