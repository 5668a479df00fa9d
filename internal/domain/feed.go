package domain

import "time"

// EventTypeTransfer es el tag de tipo que marca un evento del feed como
// transferencia. El feed de actividades mezcla transferencias con otros
// eventos (fichajes de la liga, logros, etc.) que no nos interesan.
const EventTypeTransfer = 15

// FeedEvent es un evento crudo del feed de actividades de la liga.
// Inmutable una vez descargado; la identidad la da ID (único por liga).
type FeedEvent struct {
	ID   string    `json:"id"`
	Date time.Time `json:"date"`
	Type int       `json:"type"`
	Meta FeedMeta  `json:"meta"`
}

// FeedMeta es el payload de un evento de transferencia. Los campos
// opcionales ausentes en el upstream quedan en su zero value.
type FeedMeta struct {
	SellerName string `json:"seller,omitempty"`
	BuyerName  string `json:"buyer,omitempty"`
	PlayerID   string `json:"playerId"`
	TeamID     string `json:"teamId"`
	Price      int64  `json:"price"`
}

// IsTransfer devuelve true si el evento lleva el tag de transferencia.
func (e FeedEvent) IsTransfer() bool {
	return e.Type == EventTypeTransfer
}

// Classify deriva el tipo de transferencia y las dos partes a partir del
// payload. Reglas:
//   - vendedor y comprador presentes → venta entre managers
//   - solo vendedor → venta a la plataforma
//   - solo comprador → compra a la plataforma
//   - ninguno → desconocido
func (m FeedMeta) Classify() (kind TransferKind, manager, counterparty string) {
	switch {
	case m.SellerName != "" && m.BuyerName != "":
		return KindSell, m.SellerName, m.BuyerName
	case m.SellerName != "":
		return KindSell, m.SellerName, PlatformName
	case m.BuyerName != "":
		return KindBuy, m.BuyerName, PlatformName
	default:
		return KindUnknown, "", ""
	}
}
