package api

import "time"

// Society is a client company whose material gets collected.
type Society struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
}

// Truck is a collection vehicle.
type Truck struct {
	ID           uint    `json:"id"`
	Registration string  `json:"registration"`
	CapacityKg   float64 `json:"capacityKg"`
}

// Destination is a processing site collected material is delivered to.
type Destination struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
}

// Pickup is one scheduled or completed collection run.
type Pickup struct {
	ID            uint      `json:"id"`
	SocietyID     uint      `json:"societyId"`
	TruckID       uint      `json:"truckId"`
	DestinationID uint      `json:"destinationId"`
	Date          time.Time `json:"date"`
	WeightKg      float64   `json:"weightKg"`
	Status        string    `json:"status"`
}

// Sale records collected material sold on.
type Sale struct {
	ID       uint      `json:"id"`
	Date     time.Time `json:"date"`
	Material string    `json:"material"`
	WeightKg float64   `json:"weightKg"`
	Amount   float64   `json:"amount"`
}

// Transaction is an accounting ledger entry.
type Transaction struct {
	ID     uint      `json:"id"`
	Date   time.Time `json:"date"`
	Label  string    `json:"label"`
	Amount float64   `json:"amount"`
}
