package entity

import "github.com/shopspring/decimal"

// StockSnapshot es la vista derivada del stock de un ítem en un proyecto.
// No se persiste: se calcula plegando el libro completo.
//
//	CurrentStock = IncomingTotal - OutgoingTotal + IncreaseTotal - DecreaseTotal
type StockSnapshot struct {
	ProjectID     string
	ItemName      string
	IncomingTotal decimal.Decimal // Σ quantity donde operation = IN
	OutgoingTotal decimal.Decimal // Σ quantity donde operation = OUT
	IncreaseTotal decimal.Decimal // Σ quantity donde operation = ADJUST_INCREASE
	DecreaseTotal decimal.Decimal // Σ quantity donde operation = ADJUST_DECREASE
	CurrentStock  decimal.Decimal
}
