package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-ActionCentreService/pkg/types"
)

// BookingTarget the product or procedure a visit is booked for
type BookingTarget struct {
	ProductID   string // pricebook entry id, empty when opened from a procedure page
	ProcedureID string
	Name        string
	UnitPrice   *decimal.Decimal
}

// BookingDraft in-progress booking form state
type BookingDraft struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string

	CentreID   string
	ProviderID string
	Date       *time.Time
	Slot       *types.HourOfDay
	Target     *BookingTarget
}

// HasProviderAndDate reports whether slots can be requested for the draft
func (d BookingDraft) HasProviderAndDate() bool {
	return d.ProviderID != "" && d.Date != nil
}

// Clone returns a deep copy safe to hand out to readers
func (d BookingDraft) Clone() BookingDraft {
	out := d
	if d.Date != nil {
		date := *d.Date
		out.Date = &date
	}
	if d.Slot != nil {
		slot := *d.Slot
		out.Slot = &slot
	}
	if d.Target != nil {
		target := *d.Target
		out.Target = &target
	}
	return out
}

// BookingRequest validated payload sent to the scheduling backend
type BookingRequest struct {
	CentreID    string
	ProviderID  string
	ProcedureID string
	Date        time.Time
	Time        types.HourOfDay
	FirstName   string
	LastName    string
	Email       string
	Phone       string
}

// ScheduledVisit a stored appointment occupying one hourly slot
type ScheduledVisit struct {
	ID          int64
	ProviderID  string
	CentreID    string
	ProcedureID string
	Date        time.Time
	Time        types.HourOfDay
	FirstName   string
	LastName    string
	Email       string
	Phone       string
	CreatedAt   time.Time
}

// Validate checks every required field of the draft; all offending fields are reported
func (d BookingDraft) Validate() *ValidationError {
	v := &ValidationError{}

	ValidateContact(d.FirstName, d.LastName, d.Phone, d.Email, v)

	if d.CentreID == "" {
		v.Add(FieldCentre, MsgRequired)
	}
	if d.ProviderID == "" {
		v.Add(FieldProvider, MsgRequired)
	}
	if d.Date == nil {
		v.Add(FieldDate, MsgRequired)
	}
	if d.Slot == nil {
		v.Add(FieldSlot, MsgRequired)
	}
	if d.Target == nil || d.Target.ProcedureID == "" {
		v.Add(FieldTarget, MsgRequired)
	}

	if len(v.Fields) == 0 {
		return nil
	}
	return v
}

// ToRequest builds the submission payload; a draft that fails validation yields no request
func (d BookingDraft) ToRequest() (BookingRequest, error) {
	if v := d.Validate(); v != nil {
		return BookingRequest{}, v
	}

	return BookingRequest{
		CentreID:    d.CentreID,
		ProviderID:  d.ProviderID,
		ProcedureID: d.Target.ProcedureID,
		Date:        *d.Date,
		Time:        *d.Slot,
		FirstName:   strings.TrimSpace(d.FirstName),
		LastName:    strings.TrimSpace(d.LastName),
		Email:       strings.TrimSpace(d.Email),
		Phone:       strings.TrimSpace(d.Phone),
	}, nil
}
