package configurations

import "serialtrace/models"

type ConfigurationView struct {
	ID           int64
	Name         string
	NumberOfSSCC int
	ItemsPerCase int
	CasesPerSSCC int
	ReceiverName string
}

type PageData struct {
	Configurations []ConfigurationView
	Status         string
	ErrorMessage   string
}

type DetailData struct {
	Configuration models.Configuration
	SerialCounts  map[string]int
	Status        string
	ErrorMessage  string
}
