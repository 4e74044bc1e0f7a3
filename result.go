package shapelets

// TableCells reports a contingency table's four cells in the a, b, d, c
// order spec.md §6 specifies for output.
type TableCells struct {
	A, B, D, C int
}

// SignificantShapelet is one retained (shapelet, p-value, table) triple.
type SignificantShapelet struct {
	SeriesIndex int
	Offset      int
	Length      int
	Values      []float64

	P         float64
	Cells     TableCells
	Threshold float64

	DistanceName string
}
