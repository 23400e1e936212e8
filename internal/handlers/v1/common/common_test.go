package common

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/voice-ledger/internal/assistant"
	"github.com/carson-networks/voice-ledger/internal/classifier"
	"github.com/carson-networks/voice-ledger/internal/executor"
	"github.com/carson-networks/voice-ledger/internal/normalizer"
	"github.com/carson-networks/voice-ledger/internal/service"
	"github.com/carson-networks/voice-ledger/internal/simulator"
	"github.com/carson-networks/voice-ledger/internal/storage"
)

func TestError_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: ADD_VALUE requires an amount", executor.ErrAmountMissing), http.StatusUnprocessableEntity},
		{normalizer.ErrUnknownCommand, http.StatusUnprocessableEntity},
		{assistant.ErrCommandInFlight, http.StatusConflict},
		{assistant.ErrAlreadyListening, http.StatusConflict},
		{classifier.ErrMissingCredential, http.StatusBadGateway},
		{&classifier.CascadeExhaustedError{Attempts: 2, Last: errors.New("503")}, http.StatusBadGateway},
		{storage.ErrNotFound, http.StatusNotFound},
		{fmt.Errorf("%w: bad persona", service.ErrInvalidInput), http.StatusBadRequest},
		{simulator.ErrInvalidTerms, http.StatusBadRequest},
		{errors.New("connection refused"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			var se huma.StatusError
			require.ErrorAs(t, Error("failed", tt.err), &se)
			assert.Equal(t, tt.status, se.GetStatus())
		})
	}
}

func TestOwnerHeader_Owner(t *testing.T) {
	_, err := OwnerHeader{OwnerID: "nope"}.Owner()
	assert.Error(t, err)

	id, err := OwnerHeader{OwnerID: "0e7a5d3c-2f41-4b8e-a6c9-5d0b1e2f3a4b"}.Owner()
	require.NoError(t, err)
	assert.Equal(t, "0e7a5d3c-2f41-4b8e-a6c9-5d0b1e2f3a4b", id.String())
}
