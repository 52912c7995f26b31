package ports

import "context"

// Event nombres de eventos de ciclo de vida que se notifican hacia afuera.
const (
	EventPaymentCreated        = "payment.created"
	EventPaymentUpdated        = "payment.updated"
	EventPlanChanged           = "subscription.plan_changed"
	EventSubscriptionCancelled = "subscription.cancelled"
	EventSubscriptionExpired   = "subscription.expired"
	EventSubscriptionSuspended = "subscription.suspended"
)

// Notifier define el puerto de salida para notificaciones de eventos.
// Las notificaciones son best-effort: un fallo del adaptador nunca debe
// abortar la operación de negocio que lo originó.
type Notifier interface {
	Notify(ctx context.Context, event string, companyID string, payload map[string]any)
}
