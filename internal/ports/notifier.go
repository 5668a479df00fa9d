package ports

import (
	"context"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

// Notifier presenta el resultado de la reconciliación al usuario.
type Notifier interface {
	// Notify muestra los resúmenes por manager.
	// En la implementación de consola, imprime una tabla formateada.
	Notify(ctx context.Context, result domain.Result) error
}
