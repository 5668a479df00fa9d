package domain

import "fmt"

// FetchError es un fallo de red/API contra el upstream, etiquetado con el
// recurso e identificador que fallaron (página del feed, jugador, liga).
// El pipeline aborta la etapa en curso al verlo: un ledger enriquecido a
// medias corrompería el emparejamiento downstream.
type FetchError struct {
	Resource string // "feed" | "player" | "marketvalue" | "league" | ...
	ID       string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s %q: %v", e.Resource, e.ID, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// NewFetchError construye un FetchError envolviendo la causa.
func NewFetchError(resource, id string, err error) *FetchError {
	return &FetchError{Resource: resource, ID: id, Err: err}
}
