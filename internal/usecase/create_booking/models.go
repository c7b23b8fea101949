package create_booking

import "time"

// Request модель запроса на запись к медсестре
type Request struct {
	CentreID    string // ID центра
	ProviderID  string // ID медсестры
	ProcedureID string // ID процедуры
	Date        string // Дата приёма "YYYY-MM-DD"
	Time        string // Время приёма "HH:MM"
	FirstName   string
	LastName    string
	Email       string
	Phone       string
}

// Response модель ответа с созданной записью
type Response struct {
	ID          int64     // ID записи
	CentreID    string    // ID центра
	ProviderID  string    // ID медсестры
	ProcedureID string    // ID процедуры
	Date        time.Time // Дата приёма
	Time        string    // Время приёма "HH:00"
	CreatedAt   time.Time // Время создания
}
