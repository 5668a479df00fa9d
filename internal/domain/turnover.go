package domain

// Turnover es un par (compra, venta) del mismo jugador: un periodo de
// tenencia completo. Se espera Sell.Date >= Buy.Date pero no se asserta —
// el upstream a veces lo viola y lo aceptamos tal cual.
type Turnover struct {
	Buy  TransferRecord `json:"buy"`
	Sell TransferRecord `json:"sell"`
}

// Diff es el resultado realizado del periodo: precio de venta menos
// precio de compra.
func (t Turnover) Diff() int64 {
	return t.Sell.Price - t.Buy.Price
}

// IsStarterAssignment devuelve true si la pata de compra es una asignación
// gratuita de la plataforma (compra sintética o regalo a precio 0). Estos
// turnovers no cuentan para los extremos de ganancia/pérdida: no hubo trade
// de compra real.
func (t Turnover) IsStarterAssignment() bool {
	return t.Buy.Counterparty == PlatformName && t.Buy.Price == 0
}
