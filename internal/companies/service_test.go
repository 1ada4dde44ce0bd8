package companies

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockRepo struct {
	companies map[int64]Company
	nextID    int64
}

func newMockRepo() *mockRepo {
	return &mockRepo{companies: make(map[int64]Company), nextID: 1}
}

func (m *mockRepo) Get(ctx context.Context, id int64) (Company, error) {
	c, ok := m.companies[id]
	if !ok {
		return Company{}, ErrNotFound
	}
	return c, nil
}

func (m *mockRepo) Create(ctx context.Context, c Company) (Company, error) {
	c.ID = m.nextID
	m.nextID++
	m.companies[c.ID] = c
	return c, nil
}

func TestNewBasicDefaults(t *testing.T) {
	c := NewBasic("  Test Builders  ")
	assert.Equal(t, "Test Builders", c.Name)
	assert.Equal(t, PlanBasic, c.Plan)
	assert.Equal(t, DefaultProjectLimit, c.ProjectLimit)
	assert.Zero(t, c.ID)
}

func TestServiceCreateDefaults(t *testing.T) {
	svc := NewService(newMockRepo())

	created, err := svc.Create(context.Background(), "  Test Builders  ", "")
	require.NoError(t, err)
	assert.Equal(t, "Test Builders", created.Name)
	assert.Equal(t, PlanBasic, created.Plan)
	assert.Equal(t, DefaultProjectLimit, created.ProjectLimit)
}

func TestServiceCreateRequiresName(t *testing.T) {
	svc := NewService(newMockRepo())

	_, err := svc.Create(context.Background(), "   ", PlanPro)
	assert.Error(t, err)
}

func TestServiceGet(t *testing.T) {
	repo := newMockRepo()
	svc := NewService(repo)

	created, err := svc.Create(context.Background(), "Test Builders", PlanEnterprise)
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, PlanEnterprise, got.Plan)

	_, err = svc.Get(context.Background(), 0)
	assert.Error(t, err)

	_, err = svc.Get(context.Background(), 999)
	assert.ErrorIs(t, err, ErrNotFound)
}
