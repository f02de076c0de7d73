package models

// Topic is an entry in the static news-topic catalog served to clients
type Topic struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}
