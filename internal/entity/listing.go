package entity

// Listing is a priced, market-located, currency-denominated offering. IDs are
// assigned sequentially by the builder and are immutable after creation.
// Currency and market are stored denormalized with their full catalog
// attributes, matching the persisted record shape.
type Listing struct {
	ID        int64    `json:"id" bson:"id"`
	Title     string   `json:"title" bson:"title"`
	BasePrice float64  `json:"base_price" bson:"base_price"`
	Currency  Currency `json:"currency" bson:"currency"`
	Market    Market   `json:"market" bson:"market"`
	HostName  string   `json:"host_name,omitempty" bson:"host_name,omitempty"`
}
