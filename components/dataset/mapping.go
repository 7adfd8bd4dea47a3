package dataset

import "fmt"

// Role is the user-assigned semantic purpose of a column.
type Role string

const (
	RoleNone      Role = "none"
	RoleKPI       Role = "kpi"
	RoleDimension Role = "dimension"
	RoleTime      Role = "time"
	RoleFilter    Role = "filter"
)

// Aggregation is the reduction applied to grouped numeric values.
type Aggregation string

const (
	AggSum   Aggregation = "sum"
	AggAvg   Aggregation = "avg"
	AggCount Aggregation = "count"
	AggMin   Aggregation = "min"
	AggMax   Aggregation = "max"
)

// ColumnMapping is a mutable, user-editable overlay on a ColumnProfile.
// Aggregation is meaningful only when Role is RoleKPI.
type ColumnMapping struct {
	Name        string      `json:"name"`
	Role        Role        `json:"role"`
	Type        ColumnType  `json:"type"`
	Aggregation Aggregation `json:"aggregation,omitempty"`
}

// NewMappings creates the default overlay for a freshly profiled dataset:
// every column starts unmapped.
func NewMappings(profile DatasetProfile) []ColumnMapping {
	mappings := make([]ColumnMapping, 0, len(profile.Columns))
	for _, col := range profile.Columns {
		mappings = append(mappings, ColumnMapping{
			Name: col.Name,
			Role: RoleNone,
			Type: col.Type,
		})
	}
	return mappings
}

// AutoMap assigns roles in bulk from profiled types: numeric columns
// become sum-aggregated KPIs, datetime columns become time axes, and
// categorical columns become dimensions. Text columns stay unmapped.
func AutoMap(profile DatasetProfile) []ColumnMapping {
	mappings := NewMappings(profile)
	for i, m := range mappings {
		switch m.Type {
		case TypeNumeric:
			mappings[i].Role = RoleKPI
			mappings[i].Aggregation = AggSum
		case TypeDatetime:
			mappings[i].Role = RoleTime
		case TypeCategorical:
			mappings[i].Role = RoleDimension
		}
	}
	return mappings
}

// ValidateMappings ensures every mapping references a profiled column.
func ValidateMappings(mappings []ColumnMapping, profile DatasetProfile) error {
	for _, m := range mappings {
		if _, ok := profile.Column(m.Name); !ok {
			return fmt.Errorf("dataset: mapping %q does not match any profiled column", m.Name)
		}
	}
	return nil
}

// MappingFor returns the mapping for a named column, if present.
func MappingFor(mappings []ColumnMapping, name string) (ColumnMapping, bool) {
	for _, m := range mappings {
		if m.Name == name {
			return m, true
		}
	}
	return ColumnMapping{}, false
}

// HasAssignedRoles reports whether any column carries a non-none role.
func HasAssignedRoles(mappings []ColumnMapping) bool {
	for _, m := range mappings {
		if m.Role != RoleNone && m.Role != "" {
			return true
		}
	}
	return false
}
