package repository

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeabis/zeabis/internal/domain"
	"github.com/zeabis/zeabis/internal/testutil"
)

func TestProjectRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	cust := testutil.NewTestCustomer("Acme")
	require.NoError(t, NewSQLiteCustomerRepo(db).Create(ctx, cust))

	repo := NewSQLiteProjectRepo(db)
	proj := testutil.NewTestProject(cust.ID, "Portal",
		testutil.WithProjectManager("Dana"),
		testutil.WithProjectDates("2024-01-01", "2024-12-31"))
	proj.Budget = decimal.RequireFromString("125000.50")
	require.NoError(t, repo.Create(ctx, proj))

	fetched, err := repo.GetByID(ctx, proj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Portal", fetched.Name)
	assert.Equal(t, "Acme", fetched.CustomerName)
	assert.Equal(t, "Dana", fetched.ProjectManager)
	assert.Equal(t, domain.ProjectActive, fetched.Status)
	assert.True(t, proj.Budget.Equal(fetched.Budget))
	require.NotNil(t, fetched.EndDate)
	assert.Equal(t, "2024-12-31", fetched.EndDate.String())
}

func TestProjectRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	_, err := repo.GetByID(context.Background(), "nonexistent")
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
	assert.Equal(t, "Project not found", err.Error())
}

func TestProjectRepo_Create_UnknownCustomer(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteProjectRepo(db)

	err := repo.Create(context.Background(), testutil.NewTestProject("missing", "Orphan"))
	require.Error(t, err)
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestProjectRepo_List_Filters(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	customers := NewSQLiteCustomerRepo(db)
	acme := testutil.NewTestCustomer("Acme Corp")
	globex := testutil.NewTestCustomer("Globex")
	require.NoError(t, customers.Create(ctx, acme))
	require.NoError(t, customers.Create(ctx, globex))

	repo := NewSQLiteProjectRepo(db)
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(acme.ID, "Billing Portal")))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(acme.ID, "Data Lake", testutil.WithProjectStatus(domain.ProjectOnHold))))
	require.NoError(t, repo.Create(ctx, testutil.NewTestProject(globex.ID, "Mobile App")))

	all, err := repo.List(ctx, domain.ProjectFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	onHold, err := repo.List(ctx, domain.ProjectFilter{Status: domain.ProjectOnHold})
	require.NoError(t, err)
	require.Len(t, onHold, 1)
	assert.Equal(t, "Data Lake", onHold[0].Name)

	byCustomer, err := repo.List(ctx, domain.ProjectFilter{CustomerID: globex.ID})
	require.NoError(t, err)
	require.Len(t, byCustomer, 1)
	assert.Equal(t, "Mobile App", byCustomer[0].Name)

	byText, err := repo.List(ctx, domain.ProjectFilter{NameLike: "portal", CustomerLike: "acme"})
	require.NoError(t, err)
	require.Len(t, byText, 1)
	assert.Equal(t, "Billing Portal", byText[0].Name)
}

func TestProjectRepo_Update_PartialKeepsOtherFields(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	cust := testutil.NewTestCustomer("Acme")
	require.NoError(t, NewSQLiteCustomerRepo(db).Create(ctx, cust))
	repo := NewSQLiteProjectRepo(db)
	proj := testutil.NewTestProject(cust.ID, "Portal", testutil.WithProjectManager("Dana"))
	require.NoError(t, repo.Create(ctx, proj))

	updated, err := repo.Update(ctx, proj.ID, domain.ProjectPatch{Name: domain.Ptr("Portal v2")})
	require.NoError(t, err)
	assert.Equal(t, "Portal v2", updated.Name)
	assert.Equal(t, "Dana", updated.ProjectManager)

	closed, err := repo.SetStatus(ctx, proj.ID, domain.ProjectClosed)
	require.NoError(t, err)
	assert.Equal(t, domain.ProjectClosed, closed.Status)
	assert.Equal(t, "Portal v2", closed.Name)

	_, err = repo.Update(ctx, "nope", domain.ProjectPatch{Name: domain.Ptr("x")})
	assert.True(t, domain.IsNotFound(err))
}

func TestTeamRepo_AddListRemove(t *testing.T) {
	db := testutil.NewTestDB(t)
	ctx := context.Background()
	cust := testutil.NewTestCustomer("Acme")
	require.NoError(t, NewSQLiteCustomerRepo(db).Create(ctx, cust))
	proj := testutil.NewTestProject(cust.ID, "Portal")
	require.NoError(t, NewSQLiteProjectRepo(db).Create(ctx, proj))
	emp := testutil.NewTestEmployee("Ana")
	employees := NewSQLiteEmployeeRepo(db)
	require.NoError(t, employees.Create(ctx, emp))

	team := NewSQLiteTeamRepo(db)
	member := &domain.TeamMember{
		ID: "m1", ProjectID: proj.ID, EmployeeID: emp.ID, Role: "Developer",
		AssignedDate: testutil.Date("2024-02-01"), AllocationPercentage: 50,
	}
	require.NoError(t, team.Add(ctx, member))

	dup := *member
	dup.ID = "m2"
	assert.True(t, domain.IsConflict(team.Add(ctx, &dup)))

	members, err := team.List(ctx, proj.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Ana", members[0].EmployeeName)
	assert.Equal(t, 50, members[0].AllocationPercentage)

	assignments, err := employees.ListAssignments(ctx, emp.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Portal", assignments[0].ProjectName)
	assert.Equal(t, "Developer", assignments[0].ProjectRole)

	require.NoError(t, team.Remove(ctx, proj.ID, emp.ID))
	assert.True(t, domain.IsNotFound(team.Remove(ctx, proj.ID, emp.ID)))
}
