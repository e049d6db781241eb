package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ameliakool/SCMS/internal/directory"
	"github.com/ameliakool/SCMS/internal/models"
	appErrors "github.com/ameliakool/SCMS/pkg/errors"
)

func seedStudent(t *testing.T, dir *directory.Directory, id string) {
	t.Helper()
	require.NoError(t, dir.Update(context.Background(), func(st *directory.State) error {
		st.Students = append(st.Students, &models.Student{
			ID: id, Name: "Test Student", Degree: "Engineering", Email: id + "@SmartUni.edu",
		})
		return nil
	}))
}

func TestResourceCreateWithDefaultStatus(t *testing.T) {
	svc := NewResourceService(newTestDirectory(t), nil, nil)

	resource, err := svc.Create(context.Background(), CreateResourceRequest{
		ID: "B001", Name: "Advanced Java Programming", Type: "Book",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ResourceAvailable, resource.Status)

	_, err = svc.Create(context.Background(), CreateResourceRequest{
		ID: "b001", Name: "Duplicate", Type: "Book",
	})
	assertErrorCode(t, err, appErrors.ErrValidation.Code)
}

func TestResourceCheckoutRequiresRegisteredStudent(t *testing.T) {
	dir := newTestDirectory(t)
	svc := NewResourceService(dir, nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateResourceRequest{ID: "B001", Name: "Microscope", Type: "Lab Equipment"})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "B001", "S1001")
	assertErrorCode(t, err, appErrors.ErrValidation.Code)

	seedStudent(t, dir, "S1001")

	resource, err := svc.Checkout(ctx, "B001", "S1001")
	require.NoError(t, err)
	assert.Equal(t, "Checked Out to S1001", resource.Status)
	assert.Equal(t, "S1001", resource.CheckedOutBy)
}

func TestResourceCheckoutAlreadyBorrowed(t *testing.T) {
	dir := newTestDirectory(t)
	svc := NewResourceService(dir, nil, nil)
	ctx := context.Background()

	seedStudent(t, dir, "S1001")
	seedStudent(t, dir, "S1002")

	_, err := svc.Create(ctx, CreateResourceRequest{ID: "C003", Name: "Arduino Kit", Type: "Electronics"})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "C003", "S1001")
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "C003", "S1002")
	assertErrorCode(t, err, appErrors.ErrValidation.Code)

	// The original borrower is preserved.
	resources := svc.List(ctx, "c003")
	require.Len(t, resources, 1)
	assert.Equal(t, "S1001", resources[0].CheckedOutBy)
}

func TestResourceReturn(t *testing.T) {
	dir := newTestDirectory(t)
	svc := NewResourceService(dir, nil, nil)
	ctx := context.Background()

	seedStudent(t, dir, "S1001")
	_, err := svc.Create(ctx, CreateResourceRequest{ID: "B001", Name: "Advanced Java Programming", Type: "Book"})
	require.NoError(t, err)

	_, err = svc.Checkout(ctx, "B001", "S1001")
	require.NoError(t, err)

	returned, err := svc.Return(ctx, "B001")
	require.NoError(t, err)
	assert.Equal(t, models.ResourceAvailable, returned.Status)
	assert.Empty(t, returned.CheckedOutBy)

	// Returning an available resource is a no-op.
	again, err := svc.Return(ctx, "B001")
	require.NoError(t, err)
	assert.Equal(t, models.ResourceAvailable, again.Status)

	_, err = svc.Return(ctx, "B999")
	assertErrorCode(t, err, appErrors.ErrNotFound.Code)
}

func TestResourceUpdateAndDelete(t *testing.T) {
	svc := NewResourceService(newTestDirectory(t), nil, nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateResourceRequest{ID: "L002", Name: "Microscope", Type: "Lab Equipment"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, "L002", UpdateResourceRequest{Name: "Electron Microscope", Type: "Lab Equipment"})
	require.NoError(t, err)
	assert.Equal(t, "Electron Microscope", updated.Name)

	require.NoError(t, svc.Delete(ctx, "L002"))
	require.NoError(t, svc.Delete(ctx, "L002"))
	assert.Empty(t, svc.List(ctx, ""))
}
