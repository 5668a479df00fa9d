package domain

import "time"

// MarketValue es un punto de la serie histórica de valor de mercado de un
// jugador. Date tiene granularidad de día.
type MarketValue struct {
	Date  time.Time `json:"date"`
	Value int64     `json:"value"`
}

// MarketHistory es la serie completa de un jugador. El upstream no
// garantiza orden, así que las búsquedas escanean la serie entera.
type MarketHistory []MarketValue

// ValueOn devuelve el valor registrado exactamente en el día dado.
func (h MarketHistory) ValueOn(day time.Time) (int64, bool) {
	for _, mv := range h {
		if SameDay(mv.Date, day) {
			return mv.Value, true
		}
	}
	return 0, false
}

// SameDay compara dos instantes por fecha de calendario en UTC.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
