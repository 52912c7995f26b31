// Package notifier implementa el puerto de notificaciones como un sink de
// log estructurado. Sirve como salida por defecto y deja el contrato listo
// para un adaptador real (webhook, cola) sin tocar la aplicación.
package notifier

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Nomina-api/internal/application/ports"
)

var _ ports.Notifier = (*ZerologNotifier)(nil)

// ZerologNotifier emite cada evento como una línea de log estructurado.
type ZerologNotifier struct {
	log zerolog.Logger
}

// NewZerologNotifier construye el notificador sobre el logger dado.
func NewZerologNotifier(log zerolog.Logger) *ZerologNotifier {
	return &ZerologNotifier{log: log}
}

// Notify emite el evento. Nunca falla ni bloquea al llamador.
func (n *ZerologNotifier) Notify(ctx context.Context, event string, companyID string, payload map[string]any) {
	n.log.Info().
		Str("event", event).
		Str("company_id", companyID).
		Fields(payload).
		Msg("evento de negocio")
}
