package domain

import "time"

// PlatformName es la contraparte cuando el otro lado del trade es el
// propio sistema (mercado de la plataforma) y no otro manager.
const PlatformName = "Kickbase"

// TransferKind clasifica un TransferRecord.
type TransferKind string

const (
	KindBuy     TransferKind = "buy"
	KindSell    TransferKind = "sell"
	KindUnknown TransferKind = "unknown"
	// KindAssignedAtStart marca la compra sintética que se fabrica cuando
	// una venta no tiene compra previa en la ventana observada: el jugador
	// venía asignado desde el inicio de la liga.
	KindAssignedAtStart TransferKind = "assigned_at_start"
)

// TransferRecord es un evento de transferencia normalizado y enriquecido
// con la identidad del jugador y su valor de mercado en la fecha del trade.
// Los precios son unidades enteras de la moneda del juego — nada de floats,
// la aritmética downstream no debe acumular error de redondeo.
type TransferRecord struct {
	EventID      string       `json:"eventId"`
	Date         time.Time    `json:"date"`
	Kind         TransferKind `json:"type"`
	Manager      string       `json:"user"`
	Counterparty string       `json:"tradePartner"`
	Price        int64        `json:"price"`
	PlayerID     string       `json:"playerId"`
	TeamID       string       `json:"teamId"`
	FirstName    string       `json:"firstName"`
	LastName     string       `json:"lastName"`

	// MarketPrice es el valor de mercado del jugador en la fecha del trade.
	// Se puebla una sola vez (Enriched=true); re-enriquecer es un no-op.
	MarketPrice int64 `json:"marketPrice"`
	Enriched    bool  `json:"enriched"`
}

// PlayerName devuelve el nombre completo del jugador para presentación.
func (r TransferRecord) PlayerName() string {
	if r.FirstName == "" {
		return r.LastName
	}
	return r.FirstName + " " + r.LastName
}

// Overpay devuelve cuánto se pagó por encima del valor de mercado.
// Negativo significa que el trade se cerró por debajo de mercado.
func (r TransferRecord) Overpay() int64 {
	return r.Price - r.MarketPrice
}

// PlayerInfo es la identidad estática de un jugador (lookup externo).
type PlayerInfo struct {
	FirstName string
	LastName  string
}
