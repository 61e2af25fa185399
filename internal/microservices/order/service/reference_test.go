package service

import (
	"context"
	"errors"
	"testing"

	"orders-api/internal/microservices/order/domain/dao"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAgents struct {
	rows []dao.Row
	err  error
}

func (s stubAgents) ListAgents(context.Context) ([]dao.Row, error) { return s.rows, s.err }

type stubCustomers struct {
	rows []dao.Row
	err  error
}

func (s stubCustomers) ListCustomers(context.Context) ([]dao.Row, error) { return s.rows, s.err }

func TestReferenceService_PassesThrough(t *testing.T) {
	svc := NewReferenceService(
		stubAgents{rows: []dao.Row{{"AGENT_CODE": "A001"}}},
		stubCustomers{err: errors.New("boom")},
	)

	agents, err := svc.ListAgents(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A001", agents[0]["AGENT_CODE"])

	_, err = svc.ListCustomers(context.Background())
	assert.EqualError(t, err, "boom")
}
