package fleetRepo

import (
	"busfleet/models"
	"context"
)

// FleetRepository reads bus and bus-route records owned by fleet management.
type FleetRepository interface {
	// GetBusRoute retrieves a bus-route assignment with its schedule and pricing.
	GetBusRoute(ctx context.Context, busRouteID string) (*models.BusRoute, error)
	// GetBus retrieves a bus with its seat specifications.
	GetBus(ctx context.Context, busID string) (*models.Bus, error)
}
