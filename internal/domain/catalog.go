package domain

import "github.com/shopspring/decimal"

// PricedItem a product or procedure with a price in BaseCurrency.
// BaseUnitPrice is canonical and never changed after loading;
// ConvertedPrice is derived from it for the display currency.
type PricedItem struct {
	ID            string
	Name          string
	Code          string
	Family        string
	Description   string
	CentreID      string
	BaseUnitPrice decimal.Decimal

	ConvertedPrice *decimal.Decimal
	Currency       Currency
}

// WithConversion returns a copy carrying price converted into currency
func (p PricedItem) WithConversion(price decimal.Decimal, currency Currency) PricedItem {
	p.ConvertedPrice = &price
	p.Currency = currency
	return p
}

// IsConverted reports whether a converted price is present
func (p PricedItem) IsConverted() bool {
	return p.ConvertedPrice != nil
}

// Centre an action centre or a client support centre
type Centre struct {
	ID           string
	Name         string
	Kind         string
	PricebookID  string
	WorkingHours string
	Phone        *string
	Email        *string
	Street       string
	City         string
	PostalCode   string
	Country      string
}

// IsClientSupport reports whether the centre is a client support centre
func (c *Centre) IsClientSupport() bool {
	return c.Kind == CentreKindClientSupport
}

// CentreOffer a centre offering a procedure, with the centre's price for it.
// Price is nil when the centre's pricebook lookup failed.
type CentreOffer struct {
	Centre Centre
	Price  *PricedItem
}
