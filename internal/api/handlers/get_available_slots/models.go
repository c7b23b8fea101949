package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-ActionCentreService/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	NurseID string   `json:"nurseId"`
	Date    string   `json:"date"`
	Slots   []string `json:"slots"` // "HH:00" по возрастанию
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]string, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = slot.String()
	}

	return &AvailableSlotsResponse{
		NurseID: resp.ProviderID,
		Date:    types.FormatDate(resp.Date),
		Slots:   slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров пути и query
func ToUseCaseRequest(nurseID, dateStr string) (*getAvailableSlots.Request, error) {
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		ProviderID: nurseID,
		Date:       date,
	}, nil
}
