package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/ameliakool/SCMS/pkg/errors"
)

func TestStudentCreate(t *testing.T) {
	svc := NewStudentService(newTestDirectory(t), nil, nil)
	ctx := context.Background()

	student, err := svc.Create(ctx, CreateStudentRequest{
		ID: "S1001", Name: "Josh Williams", Degree: "Animation", Email: "JWilliams@SmartUni.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, "S1001", student.ID)

	got, err := svc.Get(ctx, "s1001")
	require.NoError(t, err)
	assert.Equal(t, "Josh Williams", got.Name)
}

func TestStudentCreateRejectsNonEduEmail(t *testing.T) {
	svc := NewStudentService(newTestDirectory(t), nil, nil)

	_, err := svc.Create(context.Background(), CreateStudentRequest{
		ID: "S1001", Name: "Josh Williams", Degree: "Animation", Email: "josh@gmail.com",
	})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)

	assert.Empty(t, svc.List(context.Background(), ""))
}

func TestStudentCreateDuplicateID(t *testing.T) {
	svc := NewStudentService(newTestDirectory(t), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStudentRequest{
		ID: "S1001", Name: "Josh Williams", Degree: "Animation", Email: "JWilliams@SmartUni.edu",
	})
	require.NoError(t, err)

	// Ids are unique case-insensitively.
	_, err = svc.Create(ctx, CreateStudentRequest{
		ID: "s1001", Name: "Other", Degree: "Engineering", Email: "Other@SmartUni.edu",
	})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestStudentUpdate(t *testing.T) {
	svc := NewStudentService(newTestDirectory(t), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStudentRequest{
		ID: "S1001", Name: "Josh Williams", Degree: "Animation", Email: "JWilliams@SmartUni.edu",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "S1001", UpdateStudentRequest{
		Name: "Josh W", Degree: "Film", Email: "JW@SmartUni.edu",
	})
	require.NoError(t, err)
	assert.Equal(t, "S1001", updated.ID)
	assert.Equal(t, "Film", updated.Degree)

	_, err = svc.Update(ctx, "S9999", UpdateStudentRequest{
		Name: "Ghost", Degree: "None", Email: "Ghost@SmartUni.edu",
	})
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestStudentDeleteIdempotent(t *testing.T) {
	svc := NewStudentService(newTestDirectory(t), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateStudentRequest{
		ID: "S1001", Name: "Josh Williams", Degree: "Animation", Email: "JWilliams@SmartUni.edu",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "S1001"))
	require.NoError(t, svc.Delete(ctx, "S1001"))
	assert.Empty(t, svc.List(ctx, ""))
}

func TestStudentListSearch(t *testing.T) {
	svc := NewStudentService(newTestDirectory(t), nil, nil)
	ctx := context.Background()

	seed := []CreateStudentRequest{
		{ID: "S1001", Name: "Josh Williams", Degree: "Animation", Email: "JWilliams@SmartUni.edu"},
		{ID: "S1002", Name: "Maria Kool", Degree: "Engineering", Email: "MKool@SmartUni.edu"},
		{ID: "S1003", Name: "Nico Robin", Degree: "Ancient History", Email: "NRobin@SmartUni.edu"},
	}
	for _, req := range seed {
		_, err := svc.Create(ctx, req)
		require.NoError(t, err)
	}

	assert.Len(t, svc.List(ctx, ""), 3)

	byID := svc.List(ctx, "s1002")
	require.Len(t, byID, 1)
	assert.Equal(t, "Maria Kool", byID[0].Name)

	byName := svc.List(ctx, "robin")
	require.Len(t, byName, 1)
	assert.Equal(t, "S1003", byName[0].ID)

	assert.Empty(t, svc.List(ctx, "nobody"))
}
