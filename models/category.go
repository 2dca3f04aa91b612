package models

// Category is a distinct category label with the number of products under it.
type Category struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
