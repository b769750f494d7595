// Package slot persists the session under the "usuario" slot of the
// slot store. The wire field names are part of the stored format.
package slot

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/tienda-kame/storefront/internal/session/domain"
	"github.com/tienda-kame/storefront/internal/storage"
)

const sessionKey = "usuario"

type wireSession struct {
	ID     string    `json:"id"`
	Email  string    `json:"email"`
	Nombre string    `json:"nombre"`
	Inicio time.Time `json:"inicio"`
}

type Repo struct {
	store storage.Store
	log   *slog.Logger
}

func NewRepo(store storage.Store, log *slog.Logger) *Repo {
	if log == nil {
		log = slog.Default()
	}
	return &Repo{store: store, log: log}
}

// Load reports the persisted session. A corrupt slot reads as absent so
// a bad record cannot lock the user out of the page.
func (r *Repo) Load(ctx context.Context) (domain.Session, bool, error) {
	data, ok, err := r.store.Get(ctx, sessionKey)
	if err != nil {
		return domain.Session{}, false, errors.Wrap(err, "load session slot")
	}
	if !ok {
		return domain.Session{}, false, nil
	}

	var w wireSession
	if err := json.Unmarshal(data, &w); err != nil {
		r.log.Warn("session slot is corrupt, treating as absent", slog.Any("err", err))
		return domain.Session{}, false, nil
	}

	return domain.Session{
		ID:          w.ID,
		Identity:    w.Email,
		DisplayName: w.Nombre,
		StartedAt:   w.Inicio,
	}, true, nil
}

func (r *Repo) Save(ctx context.Context, s domain.Session) error {
	data, err := json.Marshal(wireSession{
		ID:     s.ID,
		Email:  s.Identity,
		Nombre: s.DisplayName,
		Inicio: s.StartedAt,
	})
	if err != nil {
		return errors.Wrap(err, "marshal session")
	}
	return r.store.Put(ctx, sessionKey, data)
}

func (r *Repo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, sessionKey)
}
