package ports

import (
	"context"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// FeedPage es una página del feed de actividades.
type FeedPage struct {
	Events  []domain.FeedEvent
	HasMore bool
}

// FeedProvider obtiene el feed de actividades de la liga, paginado.
// El core llama repetidamente subiendo el offset hasta que HasMore sea
// false o llegue una página vacía — el orden del feed no está garantizado.
type FeedProvider interface {
	FetchTransferPage(ctx context.Context, leagueID string, offset int) (FeedPage, error)
}
