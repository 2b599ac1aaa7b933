package export

// Column describes one exported field. Width is a relative weight used by the PDF layout.
type Column struct {
	Key   string
	Label string
	Width float64
}

// Table is tabular export content with an optional heading.
type Table struct {
	Title    string
	Subtitle string
	Columns  []Column
	Rows     []map[string]string
}

func (t Table) labels() []string {
	labels := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		labels[i] = column.Label
		if labels[i] == "" {
			labels[i] = column.Key
		}
	}
	return labels
}

func (t Table) record(row map[string]string) []string {
	record := make([]string, len(t.Columns))
	for i, column := range t.Columns {
		record[i] = row[column.Key]
	}
	return record
}
