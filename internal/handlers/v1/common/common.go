// Package common holds the pieces every v1 handler shares: the owner header
// and the mapping from domain errors to HTTP statuses.
package common

import (
	"errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/carson-networks/voice-ledger/internal/assistant"
	"github.com/carson-networks/voice-ledger/internal/classifier"
	"github.com/carson-networks/voice-ledger/internal/command"
	"github.com/carson-networks/voice-ledger/internal/executor"
	"github.com/carson-networks/voice-ledger/internal/normalizer"
	"github.com/carson-networks/voice-ledger/internal/service"
	"github.com/carson-networks/voice-ledger/internal/simulator"
	"github.com/carson-networks/voice-ledger/internal/storage"
)

// OwnerHeader is embedded in every v1 input.
type OwnerHeader struct {
	OwnerID string `header:"X-Owner-ID" required:"true" format:"uuid" doc:"Owner UUID"`
}

// Owner parses the header.
func (o OwnerHeader) Owner() (uuid.UUID, error) {
	id, err := uuid.FromString(o.OwnerID)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusUnprocessableEntity, "invalid X-Owner-ID", err)
	}
	return id, nil
}

// ParseID parses a path identifier.
func ParseID(name, raw string) (uuid.UUID, error) {
	id, err := uuid.FromString(raw)
	if err != nil {
		return uuid.Nil, huma.NewError(http.StatusBadRequest, "invalid "+name, err)
	}
	return id, nil
}

// Status maps a domain error to its HTTP status.
func Status(err error) int {
	var exhausted *classifier.CascadeExhaustedError
	switch {
	case errors.Is(err, executor.ErrAmountMissing),
		errors.Is(err, normalizer.ErrUnknownCommand),
		errors.Is(err, executor.ErrUnsupportedCommand),
		errors.Is(err, command.ErrInvalidCommand):
		return http.StatusUnprocessableEntity
	case errors.Is(err, assistant.ErrAlreadyListening),
		errors.Is(err, assistant.ErrCommandInFlight),
		errors.Is(err, assistant.ErrNotListening):
		return http.StatusConflict
	case errors.Is(err, classifier.ErrMissingCredential), errors.As(err, &exhausted):
		return http.StatusBadGateway
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidInput), errors.Is(err, simulator.ErrInvalidTerms):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error converts err into a huma status error. msg describes the failed
// operation and is used for store failures.
func Error(msg string, err error) error {
	status := Status(err)
	switch status {
	case http.StatusInternalServerError:
		return huma.NewError(status, msg, err)
	case http.StatusBadGateway:
		return huma.NewError(status, "command classification failed", err)
	case http.StatusNotFound:
		return huma.NewError(status, "not found", err)
	}
	return huma.NewError(status, err.Error(), err)
}
