package plant

// Plant is a stored plant record.
//
// ID is assigned by the store on insert and never changes or gets reused.
type Plant struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Image string  `json:"image"`
	Price float64 `json:"price"`
}

// Input carries the caller-supplied fields for a create or a full update.
// Values produced by DecodeInput are already validated.
type Input struct {
	Name  string
	Image string
	Price float64
}
