package models

// Rack is a physical bookcase in the library.
type Rack struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Shelf is one level of a rack. Capacity limits how many books fit on it.
type Shelf struct {
	ID       int64  `json:"id"`
	RackID   int64  `json:"rack_id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
}
