package services

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/audit"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/core/events"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/models"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/modules/invoicing/repositories"
	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

type ClientService struct {
	clientRepo repositories.ClientRepo
	events     events.Publisher
	activity   ActivityRecorder
	now        func() time.Time
}

func NewClientService(clientRepo repositories.ClientRepo, publisher events.Publisher) *ClientService {
	return &ClientService{
		clientRepo: clientRepo,
		events:     publisher,
		now:        time.Now,
	}
}

// SetActivityRecorder enables the activity trail for client mutations
func (s *ClientService) SetActivityRecorder(rec ActivityRecorder) {
	s.activity = rec
}

// List returns clients whose name, contact or email contains query, case-insensitively
func (s *ClientService) List(ctx context.Context, query string) ([]models.Client, error) {
	clients, err := s.clientRepo.Load(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return clients, nil
	}

	out := make([]models.Client, 0, len(clients))
	for _, c := range clients {
		if strings.Contains(strings.ToLower(c.Name), q) ||
			strings.Contains(strings.ToLower(c.Contact), q) ||
			strings.Contains(strings.ToLower(c.Email), q) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *ClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	clients, err := s.clientRepo.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range clients {
		if string(clients[i].ID) == id {
			return &clients[i], nil
		}
	}
	return nil, notFound("client", id)
}

// Add validates and appends a client with a freshly minted id
func (s *ClientService) Add(ctx context.Context, in *models.ClientInput) (*models.Client, error) {
	clean, err := normalizeClient(in)
	if err != nil {
		return nil, err
	}

	created := s.now()
	client := models.Client{
		ID:        models.FlexID(uuid.NewString()),
		Name:      clean.Name,
		Contact:   clean.Contact,
		Email:     clean.Email,
		Phone:     clean.Phone,
		Status:    clean.Status,
		Address:   clean.Address,
		GSTNumber: clean.GSTNumber,
		CreatedAt: &created,
	}

	_, _, err = s.clientRepo.Update(ctx, func(current []models.Client) ([]models.Client, bool, error) {
		if err := checkDuplicateName(current, client.Name, ""); err != nil {
			return nil, false, err
		}
		return append(current, client), true, nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.ClientsUpdated)
	utils.LogInfo("Client added", map[string]interface{}{"client_id": client.ID, "name": client.Name})
	recordActivity(ctx, s.activity, audit.ActionCreated, "client", string(client.ID), "Client "+client.Name, client)
	return &client, nil
}

// Update replaces the writable fields of an existing client
func (s *ClientService) Update(ctx context.Context, id string, in *models.ClientInput) (*models.Client, error) {
	clean, err := normalizeClient(in)
	if err != nil {
		return nil, err
	}

	var updated *models.Client
	_, _, err = s.clientRepo.Update(ctx, func(current []models.Client) ([]models.Client, bool, error) {
		idx := indexOfClient(current, id)
		if idx < 0 {
			return nil, false, notFound("client", id)
		}
		if err := checkDuplicateName(current, clean.Name, id); err != nil {
			return nil, false, err
		}

		next := make([]models.Client, len(current))
		copy(next, current)

		c := next[idx]
		c.Name = clean.Name
		c.Contact = clean.Contact
		c.Email = clean.Email
		c.Phone = clean.Phone
		c.Status = clean.Status
		c.Address = clean.Address
		c.GSTNumber = clean.GSTNumber
		next[idx] = c

		updated = &c
		return next, true, nil
	})
	if err != nil {
		return nil, err
	}

	s.events.Publish(events.ClientsUpdated)
	recordActivity(ctx, s.activity, audit.ActionUpdated, "client", id, "Client "+updated.Name, updated)
	return updated, nil
}

// Delete removes the client with id
func (s *ClientService) Delete(ctx context.Context, id string) error {
	_, _, err := s.clientRepo.Update(ctx, func(current []models.Client) ([]models.Client, bool, error) {
		idx := indexOfClient(current, id)
		if idx < 0 {
			return nil, false, notFound("client", id)
		}

		next := make([]models.Client, 0, len(current)-1)
		next = append(next, current[:idx]...)
		next = append(next, current[idx+1:]...)
		return next, true, nil
	})
	if err != nil {
		return err
	}

	s.events.Publish(events.ClientsUpdated)
	utils.LogInfo("Client deleted", map[string]interface{}{"client_id": id})
	recordActivity(ctx, s.activity, audit.ActionDeleted, "client", id, "", nil)
	return nil
}

func indexOfClient(clients []models.Client, id string) int {
	for i := range clients {
		if string(clients[i].ID) == id {
			return i
		}
	}
	return -1
}

func checkDuplicateName(clients []models.Client, name, exceptID string) error {
	for _, c := range clients {
		if string(c.ID) == exceptID && exceptID != "" {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(c.Name), name) {
			return invalid("name", "a client named %q already exists", c.Name)
		}
	}
	return nil
}

func normalizeClient(in *models.ClientInput) (models.ClientInput, error) {
	out := models.ClientInput{
		Name:      strings.TrimSpace(in.Name),
		Contact:   strings.TrimSpace(in.Contact),
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		GSTNumber: strings.ToUpper(strings.TrimSpace(in.GSTNumber)),
	}

	if out.Name == "" {
		return out, invalid("name", "client name is required")
	}
	if out.Email != "" {
		if _, err := mail.ParseAddress(out.Email); err != nil {
			return out, invalid("email", "invalid email address")
		}
	}

	switch strings.ToLower(strings.TrimSpace(in.Status)) {
	case "", "active":
		out.Status = models.ClientActive
	case "inactive":
		out.Status = models.ClientInactive
	default:
		return out, invalid("status", "status must be Active or Inactive")
	}
	return out, nil
}
