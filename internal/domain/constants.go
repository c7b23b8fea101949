package domain

// MillisPerHour length of one hourly slot in milliseconds
const MillisPerHour int64 = 3_600_000

// MillisPerDay upper bound of a working window offset
const MillisPerDay int64 = 24 * MillisPerHour

// Currency codes
const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyBYN Currency = "BYN"
)

// BaseCurrency all catalog prices are stored in and all rates are relative to
const BaseCurrency = CurrencyUSD

// SupportedCurrencies currencies a visitor can choose for display
var SupportedCurrencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyBYN}

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Centre kinds
const (
	CentreKindAction        = "Action Centre"
	CentreKindClientSupport = "Client Support Centre"
)

// Booking form field names
const (
	FieldFirstName = "firstName"
	FieldLastName  = "lastName"
	FieldPhone     = "phone"
	FieldEmail     = "email"
	FieldProvider  = "nurse"
	FieldDate      = "date"
	FieldSlot      = "time"
	FieldTarget    = "procedure"
	FieldCentre    = "centre"
)

// Business validation constants
const (
	MaxNameLength  = 80
	MaxPhoneLength = 32
	MaxEmailLength = 254
)
