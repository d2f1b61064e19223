package models

// Fixed State identifiers seeded by the migrations.
const (
	StateDraft      = 1
	StateTesting    = 2
	StateProduction = 3
)

// State is reference data; the application never creates or edits it.
type State struct {
	ID   int    `json:"id" db:"status_id" gorm:"column:status_id;primaryKey;autoIncrement:false"`
	Name string `json:"name" db:"status_name" gorm:"column:status_name;type:varchar(50);not null"`
}

func (State) TableName() string { return "status" }

// DefaultStates returns the seed rows for the status table.
func DefaultStates() []State {
	return []State{
		{ID: StateDraft, Name: "Draft"},
		{ID: StateTesting, Name: "Testing"},
		{ID: StateProduction, Name: "Production"},
	}
}
