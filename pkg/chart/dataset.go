package chart

// Entry is one labeled count.
type Entry struct {
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Dataset is an ordered sequence of entries. Labels are expected to be
// unique; the order is the draw order.
type Dataset []Entry

// Total returns the sum of all non-negative values. Negative values count as
// zero so a malformed entry can never produce a negative share.
func (d Dataset) Total() int {
	total := 0
	for _, e := range d {
		if e.Value > 0 {
			total += e.Value
		}
	}
	return total
}

// Head returns at most the first n entries.
func (d Dataset) Head(n int) Dataset {
	if n < 0 {
		n = 0
	}
	if len(d) <= n {
		return d
	}
	return d[:n]
}

// Get returns the value for label and whether it is present.
func (d Dataset) Get(label string) (int, bool) {
	for _, e := range d {
		if e.Label == label {
			return e.Value, true
		}
	}
	return 0, false
}

// SeverityCounts maps canonical severities to counts. Missing keys count as
// zero.
type SeverityCounts map[Severity]int

// Total sums the five canonical severities. Keys outside the canonical set
// are ignored.
func (s SeverityCounts) Total() int {
	total := 0
	for _, sev := range Severities {
		if v := s[sev]; v > 0 {
			total += v
		}
	}
	return total
}

// Dataset returns the counts in canonical order, including zero entries.
func (s SeverityCounts) Dataset() Dataset {
	ds := make(Dataset, 0, len(Severities))
	for _, sev := range Severities {
		v := s[sev]
		if v < 0 {
			v = 0
		}
		ds = append(ds, Entry{Label: string(sev), Value: v})
	}
	return ds
}

// Stats bundles the two datasets handed to [RenderDashboard].
type Stats struct {
	Categories Dataset
	Severities SeverityCounts
}
