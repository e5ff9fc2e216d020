package models

// Book is a catalog record. CopiesAvailable tracks how many physical copies
// are currently on the shelf.
type Book struct {
	ID              int64  `json:"id"`
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	ShelfID         int64  `json:"shelf_id,omitempty"`
	CopiesTotal     int    `json:"copies_total"`
	CopiesAvailable int    `json:"copies_available"`
}

// Available reports whether at least one copy can be issued.
func (b Book) Available() bool { return b.CopiesAvailable > 0 }
