package domain

// UnknownPlayer es el placeholder cuando un manager no tiene turnovers.
const UnknownPlayer = "Unknown"

// ManagerSummary son los extremos realizados de un manager. Valor
// inmutable: se recalcula entero en cada corrida, nunca se parchea.
type ManagerSummary struct {
	Manager              string `json:"manager"`
	BiggestOverpay       int64  `json:"biggestOverpay"`
	BiggestOverpayPlayer string `json:"biggestOverpayPlayer"`
	BiggestWin           int64  `json:"biggestWin"`
	BiggestWinPlayer     string `json:"biggestWinPlayer"`
	BiggestLoss          int64  `json:"biggestLoss"`
	BiggestLossPlayer    string `json:"biggestLossPlayer"`
}

// Result es el documento final cacheado: turnovers emparejados más el
// resumen por manager. RunID identifica la corrida que lo calculó; una
// lectura de cache devuelve el documento intacto, RunID incluido.
type Result struct {
	RunID     string                    `json:"runId"`
	Turnovers []Turnover                `json:"turnovers"`
	Summaries map[string]ManagerSummary `json:"summaries"`
}
