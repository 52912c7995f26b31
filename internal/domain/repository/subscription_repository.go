package repository

import (
	"time"

	"github.com/jhoicas/Nomina-api/internal/domain/entity"
)

// SubscriptionRepository define el puerto de persistencia para Subscription.
// Relación 1:1 con Company (company_id único); nunca se borra.
type SubscriptionRepository interface {
	Create(sub *entity.Subscription) error
	GetByCompanyID(companyID string) (*entity.Subscription, error)
	Update(sub *entity.Subscription) error
	// UpdateUsage persiste solo los contadores de uso (last-write-wins:
	// datos consultivos, no un libro mayor).
	UpdateUsage(companyID string, usage entity.UsageStats) error
	// ListExpirable devuelve suscripciones candidatas al barrido de
	// expiración: trial vencido o período vencido sin auto-renovación.
	ListExpirable(now time.Time) ([]*entity.Subscription, error)
}
