package generate

// PageData drives the generation form.
type PageData struct {
	ConfigurationID   int64
	ConfigurationName string
	Required          map[string]int
	Available         map[string]int
	ErrorMessage      string
}

// RunView is one generation history row.
type RunView struct {
	ID                int64
	ConfigurationName string
	Filename          string
	SSCCCount         int
	EventCount        int
	CreatedBy         string
	CreatedAt         string
}
