package domain

// Department enumerates the municipal service units complaints are routed to.
type Department string

const (
	DepartmentWater       Department = "water"
	DepartmentElectricity Department = "electricity"
	DepartmentRoads       Department = "roads"
	DepartmentWaste       Department = "waste"
	DepartmentHealthcare  Department = "healthcare"
	DepartmentUnknown     Department = "unknown"
)

var ticketPrefixes = map[Department]string{
	DepartmentWater:       "WAT",
	DepartmentElectricity: "ELC",
	DepartmentRoads:       "RDS",
	DepartmentWaste:       "WST",
	DepartmentHealthcare:  "HLC",
	DepartmentUnknown:     "OTH",
}

// TicketPrefix returns the short code used as the ticket number prefix.
func (d Department) TicketPrefix() string {
	if prefix, ok := ticketPrefixes[d]; ok {
		return prefix
	}
	return "OTH"
}

// ParseDepartment validates an incoming department value.
func ParseDepartment(s string) (Department, bool) {
	switch Department(s) {
	case DepartmentWater, DepartmentElectricity, DepartmentRoads,
		DepartmentWaste, DepartmentHealthcare, DepartmentUnknown:
		return Department(s), true
	}
	return "", false
}

// Departments lists the routable departments, excluding the unknown fallback.
func Departments() []Department {
	return []Department{
		DepartmentWater,
		DepartmentElectricity,
		DepartmentRoads,
		DepartmentWaste,
		DepartmentHealthcare,
	}
}
