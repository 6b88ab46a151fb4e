package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-ClassReservation/internal/domain"
	"github.com/m04kA/SMC-ClassReservation/internal/integrations/employeeservice"
	"github.com/m04kA/SMC-ClassReservation/pkg/logger"
)

type fakeDirectory struct {
	byEmail   map[string]domain.Employee
	all       []domain.Employee
	emailErr  error
	fetchErr  error
	fetchCall int
}

func (f *fakeDirectory) FindEmployeeByEmail(_ context.Context, email string) (*domain.Employee, error) {
	if f.emailErr != nil {
		return nil, f.emailErr
	}
	e, ok := f.byEmail[email]
	if !ok {
		return nil, employeeservice.ErrEmployeeNotFound
	}
	return &e, nil
}

func (f *fakeDirectory) FetchAllEmployees(_ context.Context) ([]domain.Employee, error) {
	f.fetchCall++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.all, nil
}

var kim = domain.Employee{ID: "E100", Email: "kim@corp.example", Name: "Kim", Department: "Sales", Position: "Manager"}

func TestResolve_ByEmail(t *testing.T) {
	dir := &fakeDirectory{byEmail: map[string]domain.Employee{kim.Email: kim}}
	svc := NewService(dir, logger.NewNop())

	id := svc.Resolve(context.Background(), "kim", kim.Email)

	assert.True(t, id.Resolved)
	assert.Equal(t, "E100", id.CanonicalID)
	assert.Equal(t, "kim", id.RawID)
	assert.Equal(t, "Kim", id.Name)
	assert.Equal(t, 0, dir.fetchCall)
}

func TestResolve_ByDirectoryID(t *testing.T) {
	dir := &fakeDirectory{all: []domain.Employee{kim}}
	svc := NewService(dir, logger.NewNop())

	id := svc.Resolve(context.Background(), "E100", "")

	assert.True(t, id.Resolved)
	assert.Equal(t, "E100", id.CanonicalID)
	assert.Equal(t, "Sales", id.Department)
}

func TestResolve_ByEmailLikeRawID(t *testing.T) {
	dir := &fakeDirectory{all: []domain.Employee{kim}}
	svc := NewService(dir, logger.NewNop())

	id := svc.Resolve(context.Background(), "KIM@corp.example", "")

	assert.True(t, id.Resolved)
	assert.Equal(t, "E100", id.CanonicalID)
	assert.Equal(t, "KIM@corp.example", id.RawID)
}

func TestResolve_DegradesOnLookupFailure(t *testing.T) {
	dir := &fakeDirectory{emailErr: errors.New("connection refused")}
	svc := NewService(dir, logger.NewNop())

	id := svc.Resolve(context.Background(), "E555", "x@corp.example")

	assert.False(t, id.Resolved)
	assert.Equal(t, "E555", id.CanonicalID)
	assert.Equal(t, "E555", id.RawID)
}

func TestResolve_DegradesOnDirectoryFailure(t *testing.T) {
	dir := &fakeDirectory{fetchErr: errors.New("timeout")}
	svc := NewService(dir, logger.NewNop())

	id := svc.Resolve(context.Background(), "E555", "")

	assert.False(t, id.Resolved)
	assert.Equal(t, "E555", id.CanonicalID)
}

func TestResolve_UnknownEmployee(t *testing.T) {
	dir := &fakeDirectory{all: []domain.Employee{kim}}
	svc := NewService(dir, logger.NewNop())

	id := svc.Resolve(context.Background(), "E777", "nobody@corp.example")

	assert.False(t, id.Resolved)
	assert.Equal(t, "E777", id.CanonicalID)
	assert.Equal(t, "nobody@corp.example", id.Email)
}

func TestResolve_NilDirectory(t *testing.T) {
	svc := NewService(nil, logger.NewNop())
	id := svc.Resolve(context.Background(), "", "solo@corp.example")

	assert.False(t, id.Resolved)
	assert.Equal(t, "solo@corp.example", id.CanonicalID)
}
