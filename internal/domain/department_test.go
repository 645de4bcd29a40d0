package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/civic-kit/complaint-service/internal/domain"
)

func TestTicketPrefix(t *testing.T) {
	cases := map[domain.Department]string{
		domain.DepartmentWater:       "WAT",
		domain.DepartmentElectricity: "ELC",
		domain.DepartmentRoads:       "RDS",
		domain.DepartmentWaste:       "WST",
		domain.DepartmentHealthcare:  "HLC",
		domain.DepartmentUnknown:     "OTH",
	}
	for dept, want := range cases {
		assert.Equal(t, want, dept.TicketPrefix())
	}

	assert.Equal(t, "OTH", domain.Department("parks").TicketPrefix())
}

func TestParseDepartment(t *testing.T) {
	dept, ok := domain.ParseDepartment("electricity")
	assert.True(t, ok)
	assert.Equal(t, domain.DepartmentElectricity, dept)

	_, ok = domain.ParseDepartment("Electricity")
	assert.False(t, ok)

	_, ok = domain.ParseDepartment("")
	assert.False(t, ok)
}

func TestDepartmentsExcludesUnknown(t *testing.T) {
	assert.NotContains(t, domain.Departments(), domain.DepartmentUnknown)
	assert.Len(t, domain.Departments(), 5)
}

func TestRoleIsStaff(t *testing.T) {
	assert.False(t, domain.RoleUser.IsStaff())
	assert.True(t, domain.RoleAdmin.IsStaff())
	assert.True(t, domain.RoleSuperadmin.IsStaff())
}
