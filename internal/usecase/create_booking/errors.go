package create_booking

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках usecase.
	// Бизнес-отказы возвращаются как *domain.SubmissionRejected.
	ErrInternal = errors.New("create_booking: internal error")
)

// Сообщения отказа, которые видит посетитель
const (
	msgRejected          = "The appointment could not be scheduled"
	msgInvalidDate       = "Invalid date, expected YYYY-MM-DD"
	msgDateInPast        = "Date cannot be in the past"
	msgInvalidTime       = "Invalid time, expected HH:MM"
	msgProviderNotFound  = "Nurse not found"
	msgProviderElsewhere = "Nurse does not work at this centre"
	msgNotOffered        = "Procedure is not offered at this centre"
	msgOutsideHours      = "Time is outside of the nurse's working hours"
	msgSlotTaken         = "The selected time slot is already booked"
)
