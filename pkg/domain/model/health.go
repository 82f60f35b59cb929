package model

// HealthStatus is the body of the health endpoint
type HealthStatus struct {
	Status  string        `json:"status"`
	Service string        `json:"service"`
	Version string        `json:"version"`
	Catalog CatalogStatus `json:"catalog"`
}

// CatalogStatus summarizes the textures map the server resolves against
type CatalogStatus struct {
	Textures     int `json:"textures"`
	Repositories int `json:"repositories"`
}
