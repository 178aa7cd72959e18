package store

import (
	"strings"
	"sync"
	"time"

	"bikerental/internal/validation"
)

// Store owns the bike inventory, the client registry and all rental
// records. Entities reference each other by id only; the arena slices
// keep creation order while the id maps decouple lookup from position.
// A single mutex serializes every operation so the store can back a
// multi-client front end.
type Store struct {
	name    string
	address string

	mu         sync.Mutex
	bikes      []*Bike
	bikeByID   map[int]*Bike
	clients    []*Client
	clientByID map[int]*Client
	rentals    []*Rental

	validator *validation.Validator
	timeNow   func() time.Time
}

func New(name, address string) *Store {
	return &Store{
		name:       name,
		address:    address,
		bikeByID:   make(map[int]*Bike),
		clientByID: make(map[int]*Client),
		validator:  validation.New(),
		timeNow:    time.Now,
	}
}

func (s *Store) Name() string { return s.name }

func (s *Store) Address() string { return s.address }

// AddBike registers a new bike. Ids are dense and ordered by creation.
func (s *Store) AddBike(color string) (Bike, error) {
	if strings.TrimSpace(color) == "" {
		return Bike{}, NewError(InvalidFormat, "bike color must be provided")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	bike := &Bike{ID: len(s.bikes) + 1, Color: color, Available: true}
	s.bikes = append(s.bikes, bike)
	s.bikeByID[bike.ID] = bike
	return *bike, nil
}

// AddClient validates and registers a client. Email must be unique
// across all registered clients, compared case-sensitively as provided.
func (s *Store) AddClient(name, email, cpf string) (Client, error) {
	if err := s.validator.Client(name, email, cpf); err != nil {
		return Client{}, NewError(InvalidFormat, "%v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.findClientByEmail(email) != nil {
		return Client{}, NewError(DuplicateClient, "client with email %s is already registered", email)
	}

	client := &Client{ID: len(s.clients) + 1, Name: name, Email: email, CPF: cpf}
	s.clients = append(s.clients, client)
	s.clientByID[client.ID] = client
	return *client, nil
}

// ListBikes returns the inventory in creation order.
func (s *Store) ListBikes() []Bike {
	s.mu.Lock()
	defer s.mu.Unlock()

	bikes := make([]Bike, len(s.bikes))
	for i, b := range s.bikes {
		bikes[i] = *b
	}
	return bikes
}

// AddRental reserves quantity bikes for the client and opens one rental
// record per bike, all sharing the same start. Allocation is
// all-or-nothing: on any failure no bike is reserved. The validation
// order is observable through the returned error and must stay:
// model, quantity, inventory, client, family size.
func (s *Store) AddRental(model, email string, quantity int, family bool) ([]Rental, error) {
	m, err := parseModel(model)
	if err != nil {
		return nil, err
	}
	if quantity <= 0 {
		return nil, NewError(InvalidQuantity, "rental quantity must be a positive integer, got %d", quantity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	free := s.availableBikes(quantity)
	if len(free) < quantity {
		return nil, NewError(InsufficientInventory, "only %d of %d requested bikes are available", len(free), quantity)
	}
	client := s.findClientByEmail(email)
	if client == nil {
		return nil, NewError(UnknownClient, "no client registered with email %s", email)
	}
	if family && (quantity < minFamilySize || quantity > maxFamilySize) {
		return nil, NewError(InvalidFamilySize, "family rentals take %d to %d bikes, got %d", minFamilySize, maxFamilySize, quantity)
	}

	start := s.timeNow().UTC()
	created := make([]Rental, 0, quantity)
	for _, bike := range free {
		bike.Available = false
		rental := &Rental{Model: m, Family: family, Start: start, BikeID: bike.ID, ClientID: client.ID}
		s.rentals = append(s.rentals, rental)
		created = append(created, *rental)
	}
	return created, nil
}

// CalculateRental settles all of the client's open rentals as one batch:
// every involved bike is released, every rental is stamped with the same
// end, and the amount due is returned. Family charges are summed
// separately and discounted once. A client with no open rentals owes 0
// and nothing is mutated.
func (s *Store) CalculateRental(email string) (float64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	client := s.findClientByEmail(email)
	if client == nil {
		return 0, NewError(UnknownClient, "no client registered with email %s", email)
	}

	end := s.timeNow().UTC()

	// Price the whole batch before mutating anything so a bad interval
	// cannot leave a half-settled client.
	type priced struct {
		rental *Rental
		units  int
	}
	var batch []priced
	for _, rental := range s.rentals {
		if rental.ClientID != client.ID || rental.End != nil {
			continue
		}
		units, err := elapsedUnits(rental.Model, rental.Start, end)
		if err != nil {
			return 0, err
		}
		batch = append(batch, priced{rental: rental, units: units})
	}

	var value, familyValue float64
	for _, p := range batch {
		if bike, ok := s.bikeByID[p.rental.BikeID]; ok {
			bike.Available = true
		}
		stamp := end
		p.rental.End = &stamp

		charge := float64(p.units) * unitPrice[p.rental.Model]
		if p.rental.Family {
			familyValue += charge
		} else {
			value += charge
		}
	}
	return value + familyValue*familyDiscount, nil
}

// availableBikes collects up to quantity free bikes, first-fit in
// creation order. Callers must hold the mutex and check the length
// against the request.
func (s *Store) availableBikes(quantity int) []*Bike {
	var free []*Bike
	for _, bike := range s.bikes {
		if !bike.Available {
			continue
		}
		free = append(free, bike)
		if len(free) == quantity {
			break
		}
	}
	return free
}

// findClientByEmail returns the first match in registration order, or
// nil. Callers must hold the mutex.
func (s *Store) findClientByEmail(email string) *Client {
	for _, client := range s.clients {
		if client.Email == email {
			return client
		}
	}
	return nil
}
