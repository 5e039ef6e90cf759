package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"hotelier/internal/database"
	"hotelier/internal/models"

	"github.com/rs/zerolog"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ClientService registers and looks up guests.
type ClientService struct {
	clients ClientStore
	logger  *zerolog.Logger
}

func NewClientService(clients ClientStore, logger *zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, logger: logger}
}

// Register validates and persists a new client.
func (s *ClientService) Register(ctx context.Context, client *models.Client) (*models.Client, error) {
	if client == nil {
		return nil, ErrNilClient
	}
	if strings.TrimSpace(client.Name) == "" {
		return nil, fmt.Errorf("%w: client name is required", ErrInvalidArgument)
	}
	if strings.TrimSpace(client.LastName) == "" {
		return nil, fmt.Errorf("%w: client last name is required", ErrInvalidArgument)
	}
	if !emailPattern.MatchString(client.Email) {
		return nil, fmt.Errorf("%w: client email is not valid", ErrInvalidArgument)
	}

	if err := s.clients.CreateClient(ctx, client); err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	s.logger.Info().Int64("client_id", client.ID).Msg("Client registered")
	return client, nil
}

// Get returns a client by id.
func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	client, err := s.clients.GetClient(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: client %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get client: %w", err)
	}
	return client, nil
}
