package engine

import (
	"slices"
	"sort"
	"strings"

	"vgsales/internal/models"
)

// SeriesOptions tunes the adjacent-title scan.
type SeriesOptions struct {
	// WrapAround compares the first title in sorted order with the last one,
	// as the original dashboard did. Disable it to give the first title no
	// predecessor.
	WrapAround bool
}

func DefaultSeriesOptions() SeriesOptions {
	return SeriesOptions{WrapAround: true}
}

// tokenize strips colons and splits a title on whitespace. Series members
// are these tokens joined by single spaces.
func tokenize(name string) []string {
	return strings.Fields(strings.ReplaceAll(name, ":", ""))
}

// tagKey is the form a row's title is looked up by when tagging. Only colons
// are stripped, so a title with irregular spacing matches no member.
func tagKey(name string) string {
	return strings.ReplaceAll(name, ":", "")
}

func commonPrefix(a, b []string) int {
	n := min(len(a), len(b))
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

// SeriesMap maps an inferred series name to its member titles. Series keep
// the order in which the scan created them.
type SeriesMap struct {
	names   []string
	members map[string][]string
	seen    map[string]map[string]struct{}
}

func newSeriesMap() *SeriesMap {
	return &SeriesMap{
		members: make(map[string][]string),
		seen:    make(map[string]map[string]struct{}),
	}
}

func (m *SeriesMap) add(name string, titles ...string) {
	set, ok := m.seen[name]
	if !ok {
		set = make(map[string]struct{})
		m.seen[name] = set
		m.names = append(m.names, name)
	}
	for _, title := range titles {
		if _, dup := set[title]; dup {
			continue
		}
		set[title] = struct{}{}
		m.members[name] = append(m.members[name], title)
	}
}

func (m *SeriesMap) Len() int { return len(m.names) }

// Names returns series names in creation order.
func (m *SeriesMap) Names() []string { return slices.Clone(m.names) }

func (m *SeriesMap) Members(name string) []string { return slices.Clone(m.members[name]) }

func (m *SeriesMap) Has(name string) bool {
	_, ok := m.members[name]
	return ok
}

type sortedTitle struct {
	raw    string
	tokens []string
}

// BuildSeries sorts the distinct titles of t by their token sequences and
// forms a series from every adjacent pair that shares at least one leading
// token. The series is named by the shared tokens.
func BuildSeries(t *Table, opts SeriesOptions) (*SeriesMap, error) {
	if t.Len() == 0 {
		return nil, emptyTable("series inference")
	}

	distinct := make(map[string]struct{})
	titles := make([]sortedTitle, 0)
	for i := range t.rows {
		name := t.rows[i].Name
		if _, ok := distinct[name]; ok {
			continue
		}
		distinct[name] = struct{}{}
		titles = append(titles, sortedTitle{raw: name, tokens: tokenize(name)})
	}
	sort.Slice(titles, func(a, b int) bool {
		if c := slices.Compare(titles[a].tokens, titles[b].tokens); c != 0 {
			return c < 0
		}
		return titles[a].raw < titles[b].raw
	})

	m := newSeriesMap()
	n := len(titles)
	for i := 0; i < n; i++ {
		if i == 0 && !opts.WrapAround {
			continue
		}
		prev := (i - 1 + n) % n
		if prev == i {
			continue
		}
		cur, before := titles[i].tokens, titles[prev].tokens
		p := commonPrefix(cur, before)
		// titles differing only in colons or spacing are one title
		if p < 1 || (p == len(cur) && p == len(before)) {
			continue
		}
		m.add(strings.Join(cur[:p], " "), strings.Join(cur, " "), strings.Join(before, " "))
	}
	return m, nil
}

// SeriesInference is the result of tagging every row of a table with the
// first series containing its title.
type SeriesInference struct {
	Map *SeriesMap
	// Tags holds one entry per table row; "" marks an untagged row.
	Tags        []string
	Occurrences map[string]int
	// Popular lists series tagged onto more than one row, in creation order.
	Popular []string
}

// TagSeries assigns each row to the first-created series whose members
// include the row's colon-stripped title, then counts rows per series.
func TagSeries(t *Table, m *SeriesMap) *SeriesInference {
	first := make(map[string]string)
	for _, name := range m.names {
		for _, title := range m.members[name] {
			if _, ok := first[title]; !ok {
				first[title] = name
			}
		}
	}

	inf := &SeriesInference{
		Map:         m,
		Tags:        make([]string, t.Len()),
		Occurrences: make(map[string]int),
	}
	for i := range t.rows {
		name, ok := first[tagKey(t.rows[i].Name)]
		if !ok {
			continue
		}
		inf.Tags[i] = name
		inf.Occurrences[name]++
	}
	for _, name := range m.names {
		if inf.Occurrences[name] > 1 {
			inf.Popular = append(inf.Popular, name)
		}
	}
	return inf
}

// InferSeries builds the series map for t and tags its rows.
func InferSeries(t *Table, opts SeriesOptions) (*SeriesInference, error) {
	m, err := BuildSeries(t, opts)
	if err != nil {
		return nil, err
	}
	return TagSeries(t, m), nil
}

// Tag returns the series assigned to row i, if any.
func (inf *SeriesInference) Tag(i int) (string, bool) {
	if i < 0 || i >= len(inf.Tags) || inf.Tags[i] == "" {
		return "", false
	}
	return inf.Tags[i], true
}

// PopularItems summarizes the popular series for presentation.
func (inf *SeriesInference) PopularItems(withMembers bool) []models.SeriesItem {
	items := make([]models.SeriesItem, 0, len(inf.Popular))
	for _, name := range inf.Popular {
		item := models.SeriesItem{Name: name, Occurrences: inf.Occurrences[name]}
		if withMembers {
			item.Members = inf.Map.Members(name)
		}
		items = append(items, item)
	}
	return items
}

// SeriesRows returns the rows of t tagged with the named series. inf must
// have been computed from t.
func SeriesRows(t *Table, inf *SeriesInference, name string) ([]models.Row, error) {
	if !inf.Map.Has(name) {
		return nil, invalidParameter("unknown series %q", name)
	}
	if len(inf.Tags) != t.Len() {
		return nil, invalidParameter("series tags do not belong to this table")
	}
	rows := make([]models.Row, 0, inf.Occurrences[name])
	for i, tag := range inf.Tags {
		if tag == name {
			rows = append(rows, t.rows[i])
		}
	}
	return rows, nil
}
