package domain

import "context"

type TravelAPI interface {
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	Signup(ctx context.Context, name, email, password string) (*AuthResult, error)

	Trips(ctx context.Context) ([]Trip, error)

	Recommendations(ctx context.Context) ([]Trip, error)

	SavedTrips(ctx context.Context) ([]Trip, error)

	SaveTrip(ctx context.Context, tripID string) error

	UnsaveTrip(ctx context.Context, tripID string) error

	Profile(ctx context.Context) (*Profile, error)
}
