package models

// Course is reference data: the client only reads and associates it.
type Course struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
