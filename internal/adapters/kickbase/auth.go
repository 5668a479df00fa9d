package kickbase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alejandrodnm/kickledger/internal/domain"
)

const loginPath = "/v4/user/login"

// Session es el resultado de un login: token de sesión y las ligas del
// usuario (con su fecha de creación, que usamos como inicio de liga).
type Session struct {
	Token    string
	UserName string
	Leagues  []domain.League
}

// Login autentica contra Kickbase con email y password y deja el token
// fijado en el client para el resto de llamadas.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	body := loginRequest{
		Email:    email,
		Loyalty:  false,
		Password: password,
		Rep:      map[string]any{},
	}

	var resp loginResponse
	if err := c.post(ctx, c.base+loginPath, body, &resp); err != nil {
		return Session{}, fmt.Errorf("kickbase.Login: %w", err)
	}
	if resp.Token == "" {
		return Session{}, fmt.Errorf("kickbase.Login: respuesta sin token")
	}

	c.SetToken(resp.Token)

	session := Session{
		Token:    resp.Token,
		UserName: resp.User.Name,
		Leagues:  mapLeagues(resp.User.Leagues),
	}

	slog.Info("logged in",
		"user", session.UserName,
		"leagues", len(session.Leagues),
	)
	return session, nil
}

// FindLeague busca una liga de la sesión por nombre exacto.
func (s Session) FindLeague(name string) (domain.League, bool) {
	for _, l := range s.Leagues {
		if l.Name == name {
			return l, true
		}
	}
	return domain.League{}, false
}
