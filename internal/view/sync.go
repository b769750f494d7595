// Package view reconciles persisted cart state into display surfaces
// and owns the transient per-card selector quantities of the catalog
// page. Neither carries state the cart manager doesn't already have.
package view

import (
	"context"
	"log/slog"
	"sync"

	cartdomain "github.com/tienda-kame/storefront/internal/cart/domain"
)

// Surface is anything that can show the cart summary: a navbar badge,
// a cart page, a log line.
type Surface interface {
	ShowCart(summary cartdomain.Summary)
}

// SummaryReader is satisfied by the cart manager.
type SummaryReader interface {
	Summary(ctx context.Context) (cartdomain.Summary, error)
}

// Sync pushes the derived cart view to every registered surface. It is
// stateless: re-running it with no intervening mutation repaints the
// same output, and a page with no surfaces at all is fine.
type Sync struct {
	mu       sync.RWMutex
	surfaces []Surface
	source   SummaryReader
	log      *slog.Logger
}

func NewSync(log *slog.Logger, surfaces ...Surface) *Sync {
	if log == nil {
		log = slog.Default()
	}
	return &Sync{surfaces: surfaces, log: log}
}

// AttachSource wires the cart manager in after construction; the manager
// needs the Sync as its notifier, so the two are linked in two steps.
func (s *Sync) AttachSource(source SummaryReader) {
	s.mu.Lock()
	s.source = source
	s.mu.Unlock()
}

// CartChanged implements the cart manager's Notifier port.
func (s *Sync) CartChanged(_ context.Context, summary cartdomain.Summary) {
	s.push(summary)
}

// Refresh re-reads the cart and repaints all surfaces. Safe to call at
// any time, e.g. on page load.
func (s *Sync) Refresh(ctx context.Context) error {
	s.mu.RLock()
	source := s.source
	s.mu.RUnlock()
	if source == nil {
		return nil
	}

	summary, err := source.Summary(ctx)
	if err != nil {
		return err
	}
	s.push(summary)
	return nil
}

func (s *Sync) push(summary cartdomain.Summary) {
	s.mu.RLock()
	surfaces := s.surfaces
	s.mu.RUnlock()

	for _, surface := range surfaces {
		if surface == nil {
			continue
		}
		surface.ShowCart(summary)
	}
}

// BadgeLogger is the demo daemon's stand-in for the navbar badge: it
// logs the summary after every repaint.
type BadgeLogger struct {
	log *slog.Logger
}

func NewBadgeLogger(log *slog.Logger) *BadgeLogger {
	if log == nil {
		log = slog.Default()
	}
	return &BadgeLogger{log: log}
}

func (b *BadgeLogger) ShowCart(summary cartdomain.Summary) {
	b.log.Info("cart badge",
		slog.Int64("total_quantity", summary.TotalQuantity),
		slog.Float64("total_value", summary.TotalValue.Decimal()),
		slog.Int("items", len(summary.Items)),
	)
}
