package domain

import "time"

type VehicleStatus string

const (
	VehicleStatusAvailable   VehicleStatus = "AVAILABLE"
	VehicleStatusUnavailable VehicleStatus = "UNAVAILABLE"
	VehicleStatusSuspended   VehicleStatus = "SUSPENDED"
)

type VehicleType string

const (
	VehicleTypeCar       VehicleType = "CAR"
	VehicleTypeMotorbike VehicleType = "MOTORBIKE"
	VehicleTypeBicycle   VehicleType = "BICYCLE"
)

// Vehicle is read-mostly here; catalog management mutates it elsewhere.
type Vehicle struct {
	ID               string        `json:"id"`
	ProviderID       string        `json:"provider_id"`
	Provider         *User         `json:"provider,omitempty"`
	Type             VehicleType   `json:"type"`
	LicensePlate     string        `json:"license_plate"`
	CostPerDayCents  int64         `json:"cost_per_day_cents"`
	DriverFeeCents   int64         `json:"driver_fee_cents"`
	Status           VehicleStatus `json:"status"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}
