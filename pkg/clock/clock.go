// Package clock abstrae la hora actual para que los servicios que dependen de
// ventanas de tiempo (trial, períodos de nómina) sean verificables en tests.
package clock

import "time"

// Clock fuente de hora actual inyectable.
type Clock interface {
	Now() time.Time
}

// System usa time.Now.
type System struct{}

// Now hora del sistema.
func (System) Now() time.Time { return time.Now() }

// Fixed devuelve siempre la misma hora (para tests).
type Fixed struct {
	T time.Time
}

// Now hora fija.
func (f Fixed) Now() time.Time { return f.T }
