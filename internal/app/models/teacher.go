package models

// Teacher is reference data, same contract as Course.
type Teacher struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
