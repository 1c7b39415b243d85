package model

// Status tags a grid cell with the display state chosen for it.
type Status int

// Cell statuses. Renderers map each status to a style.
const (
	StatusNormal Status = iota
	StatusHappening
	StatusUpcoming
	StatusCancelled
	StatusAbsent
	StatusSubstituted
	StatusTest
	StatusGap
)

var statusNames = map[Status]string{
	StatusNormal:      "normal",
	StatusHappening:   "happening",
	StatusUpcoming:    "upcoming",
	StatusCancelled:   "cancelled",
	StatusAbsent:      "absent",
	StatusSubstituted: "substituted",
	StatusTest:        "test",
	StatusGap:         "gap",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Cell is one text cell of a grid.
type Cell struct {
	Text   string `json:"text"`
	Status Status `json:"status"`
}

// Grid is a header row plus rectangular data rows; the first column holds slot labels.
type Grid struct {
	Title  string   `json:"title,omitempty"`
	Header []string `json:"header"`
	Rows   [][]Cell `json:"rows"`
}

// Empty reports whether the grid has no data rows.
func (g Grid) Empty() bool {
	return len(g.Rows) == 0
}

// SlotBase selects how the first period of a school day is numbered.
type SlotBase int

// Slot numbering modes.
const (
	SlotBaseAuto SlotBase = iota
	SlotBaseZero
	SlotBaseOne
)
