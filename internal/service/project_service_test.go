package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/harshl7081/ecowaste/internal/domain/entity"
	domainErrors "github.com/harshl7081/ecowaste/internal/domain/errors"
	"github.com/harshl7081/ecowaste/internal/domain/repository"
)

func validProjectInput() SubmitProjectInput {
	return SubmitProjectInput{
		Title:        "Community composting",
		Description:  "Neighborhood compost bins",
		Category:     entity.CategorySegregation,
		Location:     "Ward 12",
		Budget:       5000,
		Timeline:     "3 months",
		ContactName:  "Jane Doe",
		ContactEmail: "jane@example.com",
	}
}

func TestProjectSubmit_ForcesPendingStatus(t *testing.T) {
	projects := &MockProjectRepository{}
	ctx := context.Background()

	projects.On("Create", ctx, mock.AnythingOfType("*entity.Project")).Return(nil).Once()

	svc := NewProjectService(projects, zap.NewNop())

	project, err := svc.Submit(ctx, "u1", "jane@example.com", validProjectInput())

	require.NoError(t, err)
	assert.Equal(t, entity.ProjectStatusPending, project.Status)
	assert.Equal(t, entity.VisibilityModerated, project.Visibility)
	assert.Equal(t, "u1", project.UserID)
	assert.NotEmpty(t, project.ID)
}

func TestProjectSubmit_NegativeBudget(t *testing.T) {
	projects := &MockProjectRepository{}
	svc := NewProjectService(projects, zap.NewNop())

	in := validProjectInput()
	in.Budget = -1

	_, err := svc.Submit(context.Background(), "u1", "", in)

	assert.True(t, domainErrors.IsValidation(err))
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectSubmit_InvalidCategory(t *testing.T) {
	projects := &MockProjectRepository{}
	svc := NewProjectService(projects, zap.NewNop())

	in := validProjectInput()
	in.Category = "recycling-2000"

	_, err := svc.Submit(context.Background(), "u1", "", in)

	assert.True(t, domainErrors.IsValidation(err))
}

func TestProjectSubmit_MissingTitle(t *testing.T) {
	projects := &MockProjectRepository{}
	svc := NewProjectService(projects, zap.NewNop())

	in := validProjectInput()
	in.Title = "  "

	_, err := svc.Submit(context.Background(), "u1", "", in)

	assert.True(t, domainErrors.IsValidation(err))
}

func TestProjectSubmit_ExplicitVisibilityKept(t *testing.T) {
	projects := &MockProjectRepository{}
	ctx := context.Background()

	projects.On("Create", ctx, mock.AnythingOfType("*entity.Project")).Return(nil).Once()

	svc := NewProjectService(projects, zap.NewNop())

	in := validProjectInput()
	in.Visibility = entity.VisibilityPrivate

	project, err := svc.Submit(ctx, "u1", "", in)

	require.NoError(t, err)
	assert.Equal(t, entity.VisibilityPrivate, project.Visibility)
}

func TestProjectSubmit_MissingIdentity(t *testing.T) {
	projects := &MockProjectRepository{}
	svc := NewProjectService(projects, zap.NewNop())

	_, err := svc.Submit(context.Background(), "", "", validProjectInput())

	assert.True(t, domainErrors.IsUnauthorized(err))
}

func TestProjectListAll_InvalidStatusFilter(t *testing.T) {
	projects := &MockProjectRepository{}
	svc := NewProjectService(projects, zap.NewNop())

	_, _, err := svc.ListAll(context.Background(), repository.ProjectFilter{Status: "archived"})

	assert.True(t, domainErrors.IsValidation(err))
	projects.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestProjectGet_Unknown(t *testing.T) {
	projects := &MockProjectRepository{}
	ctx := context.Background()

	projects.On("GetByID", ctx, "missing").Return(nil, domainErrors.ErrProjectNotFound).Once()

	svc := NewProjectService(projects, zap.NewNop())

	_, err := svc.Get(ctx, "missing")

	assert.True(t, domainErrors.IsNotFound(err))
}
