package models

// Row is one cleaned game-sales record.
type Row struct {
	Rank        int     `json:"rank"`
	Name        string  `json:"name"`
	Platform    string  `json:"platform"`
	Year        int     `json:"year"`
	Genre       string  `json:"genre"`
	Publisher   string  `json:"publisher"`
	NASales     float64 `json:"na_sales"`
	EUSales     float64 `json:"eu_sales"`
	JPSales     float64 `json:"jp_sales"`
	OtherSales  float64 `json:"other_sales"`
	GlobalSales float64 `json:"global_sales"`
}

type TopItem struct {
	Key   string  `json:"key"`
	Value float64 `json:"value"`
	Count int     `json:"count,omitempty"`
}

// TopResult maps a sales column name to its ordered top-K groups.
type TopResult map[string][]TopItem

type YearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type ColumnSummary struct {
	Column string  `json:"column"`
	Count  int     `json:"count"`
	Sum    float64 `json:"sum"`
	Mean   float64 `json:"mean"`
	Std    float64 `json:"std"`
	Min    float64 `json:"min"`
	Median float64 `json:"median"`
	Max    float64 `json:"max"`
}

type DatasetSummary struct {
	Rows    int             `json:"rows"`
	Columns int             `json:"columns"`
	Years   YearRange       `json:"years"`
	Sales   []ColumnSummary `json:"sales"`
}

type YearlyItem struct {
	Year  int     `json:"year"`
	Sales float64 `json:"sales"`
}

type TrendPoint struct {
	Year  int     `json:"year"`
	Group string  `json:"group"`
	Sales float64 `json:"sales"`
}

type SeriesItem struct {
	Name        string   `json:"name"`
	Occurrences int      `json:"occurrences"`
	Members     []string `json:"members,omitempty"`
}

type Page struct {
	Data   interface{} `json:"data"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
