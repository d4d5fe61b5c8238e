package serials

// ImportSummary reports one CSV import outcome.
type ImportSummary struct {
	Inserted int
	Skipped  int
	Errors   int
}

type PageData struct {
	ConfigurationID   int64
	ConfigurationName string
	Counts            map[string]int
	Message           string
}
