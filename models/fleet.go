package models

import "time"

type BusRouteStatus string

const (
	BusRouteStatusActive      BusRouteStatus = "active"
	BusRouteStatusSuspended   BusRouteStatus = "suspended"
	BusRouteStatusMaintenance BusRouteStatus = "maintenance"
)

type BusSpecifications struct {
	TotalSeats int      `bson:"totalSeats" json:"totalSeats"`
	BusType    string   `bson:"busType" json:"busType"`
	Facilities []string `bson:"facilities,omitempty" json:"facilities,omitempty"`
}

// Bus is the subset of the fleet record the trip catalog reads.
type Bus struct {
	ID                 string            `bson:"id" json:"id"`
	OwnerID            string            `bson:"ownerId" json:"ownerId"`
	RegistrationNumber string            `bson:"registrationNumber" json:"registrationNumber"`
	Specifications     BusSpecifications `bson:"specifications" json:"specifications"`
	Status             string            `bson:"status" json:"status"`
}

// RoutePricing is the fare input attached to a bus-route assignment.
type RoutePricing struct {
	BaseFare           float64 `bson:"baseFare" json:"baseFare"`
	FarePerKm          float64 `bson:"farePerKm" json:"farePerKm"`
	DynamicPricing     bool    `bson:"dynamicPricing" json:"dynamicPricing"`
	PeakHourMultiplier float64 `bson:"peakHourMultiplier" json:"peakHourMultiplier"`
	WeekendMultiplier  float64 `bson:"weekendMultiplier" json:"weekendMultiplier"`
	HolidayMultiplier  float64 `bson:"holidayMultiplier" json:"holidayMultiplier"`
}

type RouteSchedule struct {
	DepartureTime string    `bson:"departureTime" json:"departureTime"`
	ArrivalTime   string    `bson:"arrivalTime" json:"arrivalTime"`
	EffectiveFrom time.Time `bson:"effectiveFrom" json:"effectiveFrom"`
	EffectiveTo   time.Time `bson:"effectiveTo" json:"effectiveTo"`
}

// BusRoute assigns a bus to a route with a schedule and pricing.
type BusRoute struct {
	ID       string         `bson:"id" json:"id"`
	BusID    string         `bson:"busId" json:"busId"`
	RouteID  string         `bson:"routeId" json:"routeId"`
	Schedule RouteSchedule  `bson:"schedule" json:"schedule"`
	Pricing  RoutePricing   `bson:"pricing" json:"pricing"`
	Status   BusRouteStatus `bson:"status" json:"status"`
}
