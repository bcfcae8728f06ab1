package entities

// Card is an encoded render of a session, ready to be sent or saved.
type Card struct {
	FileName  string
	Reference string
	Width     int
	Height    int
	PNG       []byte
}
