package dto

// Item is the static demo item shape. The items module does not interact with
// the meeting pipeline.
type Item struct {
	ItemID int    `json:"item_id"`
	Name   string `json:"name"`
}

// ItemsListResponse is the body of GET /api/v1/items.
type ItemsListResponse struct {
	Items []string `json:"items"`
}
