package domain

// Record is one corpus entry. ID is the record's row position in the
// domain's artifacts; the dense and lexical indexes are built from the
// same ordered sequence, so ID addresses all three consistently.
type Record struct {
	ID         int
	Text       string
	PictureURL string
	Name       string
}
