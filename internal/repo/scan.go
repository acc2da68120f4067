package repo

import "github.com/shopspring/decimal"

// decArg converts an optional amount into an insert/update argument.
func decArg(d *decimal.Decimal) interface{} {
	if d == nil {
		return nil
	}
	return *d
}

// decPtr converts a scanned nullable amount back into the model form.
func decPtr(nd decimal.NullDecimal) *decimal.Decimal {
	if !nd.Valid {
		return nil
	}
	d := nd.Decimal
	return &d
}
