package domain

import "time"

// League identifica una liga y su fecha de inicio. Todos los caches se
// parten por LeagueID; mezclar ligas en un mismo store es comportamiento
// indefinido (responsabilidad del caller pasar siempre la misma).
type League struct {
	ID    string
	Name  string
	Start time.Time
}

// Manager es un participante de la liga.
type Manager struct {
	ID   string
	Name string
}

// ManagerStats son las métricas del dashboard de un manager.
type ManagerStats struct {
	TeamValue    int64
	TotalPoints  int
	Placement    int
	MatchdayWins int
}

// SquadPlayer es un jugador de la plantilla actual de un manager.
type SquadPlayer struct {
	Name        string
	MarketValue int64
}
