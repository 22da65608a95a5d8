package synth

// CellBox is a cell's pixel bounding box within the rendered image.
type CellBox struct {
	X uint32 `json:"x"`
	Y uint32 `json:"y"`
	W uint32 `json:"w"`
	H uint32 `json:"h"`
}

// Highlight names the row, column, box, and cell overlaid in an image. Box
// is (box-row, box-col); Cell is (row, col).
type Highlight struct {
	Row  int    `json:"row"`
	Col  int    `json:"col"`
	Box  [2]int `json:"box"`
	Cell [2]int `json:"cell"`
}

// Record is one labels.jsonl line: the image path relative to the dataset
// root, the N² cell labels and boxes flattened row-major, the board edge
// length, and the seed the item was produced from.
type Record struct {
	Schema    string     `json:"schema"`
	Image     string     `json:"image"`
	Labels    []int      `json:"labels"`
	Boxes     []CellBox  `json:"boxes"`
	Dim       uint8      `json:"dim"`
	Seed      uint64     `json:"seed"`
	Highlight *Highlight `json:"highlight,omitempty"`
}

// SchemaV1 tags the current record layout.
const SchemaV1 = "v1"
