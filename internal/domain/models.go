// Package domain defines the persistence models for trips, cars, and
// passengers. These types are mapped with GORM and form the core data layer
// of the carpool organizer.
package domain

import "time"

// DefaultMaxPassengers is the seat capacity assumed for a car whose owner
// never declared one.
const DefaultMaxPassengers = 5

// Trip represents a carpool event opened inside one chat (or channel).
//
// Fields:
//   - ID: autoincrement primary key.
//   - ChatID: opaque identifier of the owning chat; indexed for scoping.
//   - Name: free text set once at creation.
//   - MessageRef: pointer to the chat message that currently displays the
//     trip. Nil until the adapter confirms the first render.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type Trip struct {
	ID         uint      `json:"id"                    gorm:"primaryKey;autoIncrement"`
	ChatID     string    `json:"chat_id"               gorm:"type:varchar(64);not null;index:idx_trip_chat"`
	Name       string    `json:"name"                  gorm:"type:text;not null"`
	MessageRef *string   `json:"message_ref,omitempty" gorm:"column:message_ref;type:varchar(128)"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName returns the database table name for Trip.
func (Trip) TableName() string { return "trips" }

// Car is a seat-capacity-bearing resource registered by one user in a trip.
// A user owns at most one car per trip (enforced by ux_car_trip_user).
//
// MaxPassengers is nullable: an unset capacity is resolved lazily to
// DefaultMaxPassengers when rendering.
type Car struct {
	ID            uint      `json:"id"                       gorm:"primaryKey;autoIncrement"`
	TripID        uint      `json:"trip_id"                  gorm:"not null;index;uniqueIndex:ux_car_trip_user,priority:1"`
	UserID        string    `json:"user_id"                  gorm:"type:varchar(64);not null;uniqueIndex:ux_car_trip_user,priority:2"`
	Name          string    `json:"name"                     gorm:"type:text;not null"`
	MaxPassengers *int      `json:"max_passengers,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Trip is the owning carpool event.
	Trip Trip `json:"-" gorm:"foreignKey:TripID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Car.
func (Car) TableName() string { return "cars" }

// EffectiveCapacity returns the declared capacity, or the default when unset.
func (c Car) EffectiveCapacity() int { return EffectiveCapacity(c.MaxPassengers) }

// Passenger is a user's current car membership within a trip. Rows reference
// the car only; trip scoping goes through the cars table.
type Passenger struct {
	ID        uint      `json:"id"      gorm:"primaryKey;autoIncrement"`
	CarID     uint      `json:"car_id"  gorm:"not null;index"`
	UserID    string    `json:"user_id" gorm:"type:varchar(64);not null;index"`
	Name      string    `json:"name"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Car Car `json:"-" gorm:"foreignKey:CarID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Passenger.
func (Passenger) TableName() string { return "passengers" }

// CarRef is the projection adapters need to build "join" actions.
type CarRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Seat is one passenger row joined with its car's name and declared capacity.
type Seat struct {
	PassengerName string
	CarName       string
	MaxPassengers *int
}

// EffectiveCapacity resolves a nullable capacity: nil and zero fall back to
// DefaultMaxPassengers.
func EffectiveCapacity(max *int) int {
	if max == nil || *max == 0 {
		return DefaultMaxPassengers
	}
	return *max
}
