package domain

// TableStatus is the operational status of a foosball table.
type TableStatus string

const (
	TableAvailable   TableStatus = "available"
	TableInUse       TableStatus = "in_use"
	TableMaintenance TableStatus = "maintenance"
)

// Valid reports whether s is a known status.
func (s TableStatus) Valid() bool {
	switch s {
	case TableAvailable, TableInUse, TableMaintenance:
		return true
	}
	return false
}

// FoosballTable represents a foosball_tables row.
type FoosballTable struct {
	TableID        string      `json:"table_id"`
	Name           string      `json:"name"`
	Status         TableStatus `json:"status"`
	ConditionState string      `json:"condition_state"`
}

// NewFoosballTable returns a table populated with column defaults.
func NewFoosballTable() FoosballTable {
	return FoosballTable{Status: TableAvailable}
}

// Validate checks field constraints.
func (t FoosballTable) Validate() error {
	f := FieldErrors{}
	checkRequired(f, "table_id", t.TableID, 3)
	checkRequired(f, "name", t.Name, 100)
	checkChoice(f, "status", string(t.Status), t.Status.Valid())
	checkRequired(f, "condition_state", t.ConditionState, 50)
	return f.Err()
}

// TableQuery narrows and orders a table listing.
// Ordering is a comma-separated list of table_id, name or status,
// each optionally prefixed with "-" for descending order.
type TableQuery struct {
	Search   string
	Ordering string
}
