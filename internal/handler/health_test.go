package handler_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestGetHealth_200(t *testing.T) {
	h := newHTTPHandler(serverMocks{})

	// No owner header needed for liveness checks.
	rec := doRequest(h, http.MethodGet, "/healthz", uuid.Nil, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody[map[string]string](t, rec)
	assert.Equal(t, "ok", resp["status"])
}
