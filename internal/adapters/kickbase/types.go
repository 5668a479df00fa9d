package kickbase

import "encoding/json"

// DTOs raw del API v4 de Kickbase. Solo se usan dentro de este paquete.
// La conversión a domain entities se hace en mapping.go.
//
// El API abrevia todo: i=id, dt=date, t=type, af=activity feed,
// slr=seller, byr=buyer, pi=playerID, tid=teamID, trp=traded price,
// mv=market value, fn/ln=first/last name, us=users, srvl=leagues.
// Los IDs llegan a veces como número y a veces como string según el
// endpoint — usamos json.Number y normalizamos en mapping.go.

// --- Login ---

// loginRequest es el body del POST /v4/user/login.
type loginRequest struct {
	Email    string         `json:"em"`
	Loyalty  bool           `json:"loy"`
	Password string         `json:"pass"`
	Rep      map[string]any `json:"rep"`
}

// loginResponse es la respuesta del login: el usuario con sus ligas y el token.
type loginResponse struct {
	User  loginUser `json:"u"`
	Token string    `json:"tkn"`
}

type loginUser struct {
	ID      json.Number  `json:"id"`
	Name    string       `json:"name"`
	Email   string       `json:"email"`
	Leagues []leagueItem `json:"srvl"`
}

// leagueItem es una liga del usuario con su fecha de creación.
type leagueItem struct {
	ID       json.Number `json:"id"`
	Name     string      `json:"name"`
	Creation string      `json:"creation"` // RFC3339
}

// --- Feed de actividades ---

// feedResponse es la respuesta paginada de GET /activitiesFeed.
type feedResponse struct {
	Items []feedItem `json:"af"`
}

// feedItem es un evento del feed. Data solo trae campos útiles cuando
// t == 15 (transferencia).
type feedItem struct {
	ID   json.Number `json:"i"`
	Date string      `json:"dt"` // RFC3339
	Type int         `json:"t"`
	Data feedData    `json:"data"`
}

// feedData es el payload de una transferencia. slr/byr ausentes indican
// que ese lado del trade es la plataforma.
type feedData struct {
	Seller   string      `json:"slr,omitempty"`
	Buyer    string      `json:"byr,omitempty"`
	PlayerID json.Number `json:"pi"`
	TeamID   json.Number `json:"tid"`
	Price    int64       `json:"trp"`
}

// --- Jugadores ---

// playerResponse es la respuesta de GET /competitions/1/players/{id}.
type playerResponse struct {
	FirstName string `json:"fn"`
	LastName  string `json:"ln"`
}

// marketValueResponse es la respuesta de GET .../marketValue/365.
type marketValueResponse struct {
	Items []marketValueItem `json:"it"`
}

// marketValueItem es un punto de la serie: dt = días desde epoch.
type marketValueItem struct {
	Day   int64 `json:"dt"`
	Value int64 `json:"mv"`
}

// --- Liga ---

// overviewResponse es la respuesta de GET /leagues/{id}/overview.
type overviewResponse struct {
	Users []overviewUser `json:"us"`
}

type overviewUser struct {
	ID   json.Number `json:"i"`
	Name string      `json:"n"`
}

// dashboardResponse es la respuesta de GET /managers/{id}/dashboard.
type dashboardResponse struct {
	MatchdayWins int   `json:"mdw"`
	Placement    int   `json:"pl"`
	TotalPoints  int   `json:"tp"`
	TeamValue    int64 `json:"tv"`
}

// squadResponse es la respuesta de GET /managers/{id}/squad.
type squadResponse struct {
	Items []squadItem `json:"it"`
}

type squadItem struct {
	Name        string `json:"pn"`
	MarketValue int64  `json:"mv"`
}
