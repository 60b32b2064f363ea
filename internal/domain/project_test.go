package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProjectValidate_RequiresNameAndCustomer(t *testing.T) {
	p := &Project{CustomerID: "c1"}
	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Contains(t, err.Error(), "projectName")

	p = &Project{Name: "Portal"}
	err = p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customerId")
}

func TestProjectValidate_RejectsUnknownStatus(t *testing.T) {
	p := &Project{Name: "Portal", CustomerID: "c1", Status: "Paused"}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Paused")
}

func TestProjectValidate_EndBeforeStart(t *testing.T) {
	start, err := ParseDate("2024-05-01")
	require.NoError(t, err)
	end, err := ParseDate("2024-04-01")
	require.NoError(t, err)

	p := &Project{Name: "Portal", CustomerID: "c1", StartDate: &start, EndDate: &end}
	assert.Error(t, p.Validate())

	p.EndDate = nil
	assert.NoError(t, p.Validate())
}

func TestProjectPatchValidate(t *testing.T) {
	bad := ProjectStatus("Someday")
	assert.Error(t, ProjectPatch{Status: &bad}.Validate())

	good := ProjectOnHold
	assert.NoError(t, ProjectPatch{Status: &good}.Validate())
	assert.NoError(t, ProjectPatch{}.Validate())
}

func TestTeamMemberValidate_Allocation(t *testing.T) {
	m := &TeamMember{EmployeeID: "e1", AllocationPercentage: 120}
	assert.Error(t, m.Validate())

	m.AllocationPercentage = 50
	assert.NoError(t, m.Validate())
}
