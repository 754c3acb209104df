package transport

// DesignImage is a base64 payload plus its MIME type.
type DesignImage struct {
	ImageData string `json:"image_data"`
	ImageType string `json:"image_type"`
}

// SaveDesignRequest upserts a catalog entry. ID present means update.
// Width and Height are pointers so an update that omits them keeps the
// stored dimensions and price untouched.
type SaveDesignRequest struct {
	ID                *uint         `json:"id"`
	Name              string        `json:"name"`
	Width             *int          `json:"width"`
	Height            *int          `json:"height"`
	Description       string        `json:"description"`
	Tags              string        `json:"tags"`
	Images            []DesignImage `json:"images"`
	DeleteAllPreviews bool          `json:"delete_all_previews"`
}

type SaveDesignResponse struct {
	Success         bool    `json:"success"`
	Message         string  `json:"message"`
	DesignID        uint    `json:"design_id"`
	CalculatedPrice float64 `json:"calculated_price"`
}

type OrderItemRequest struct {
	Name               string  `json:"name"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	Image              string  `json:"image"`
	PlacementPosition  string  `json:"placement_position"`
	DesignSide         string  `json:"design_side"`
	DesignWidth        int     `json:"design_width"`
	DesignHeight       int     `json:"design_height"`
	CustomRequirements string  `json:"custom_requirements"`
}

// PlaceOrderRequest carries the client-computed totals. They are persisted
// verbatim as snapshots on every line; nil means no snapshot.
type PlaceOrderRequest struct {
	Username string             `json:"username"`
	Items    []OrderItemRequest `json:"items"`
	Subtotal *float64           `json:"subtotal"`
	Tax      *float64           `json:"tax"`
	Total    *float64           `json:"total"`
}

// OrderItem is the read-time projection of one stored line, with every
// optional field defaulted.
type OrderItem struct {
	Name               string  `json:"name"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	Image              string  `json:"image"`
	PlacementPosition  string  `json:"placement_position"`
	DesignSide         string  `json:"design_side"`
	DesignWidth        int     `json:"design_width"`
	DesignHeight       int     `json:"design_height"`
	CustomRequirements string  `json:"custom_requirements"`
}

// LogicalOrder is the aggregation of all lines sharing one order id. It is
// derived at read time, never stored.
type LogicalOrder struct {
	OrderID  string      `json:"order_id"`
	Date     string      `json:"date"`
	Status   string      `json:"status"`
	Items    []OrderItem `json:"items"`
	Subtotal float64     `json:"subtotal"`
	Tax      float64     `json:"tax"`
	Total    float64     `json:"total"`
}

type RegisterRequest struct {
	FirstName string `json:"fname"`
	LastName  string `json:"lname"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Username   string `json:"username"`
	Address    string `json:"address"`
	Mobile     string `json:"mobile"`
	District   string `json:"district"`
	ProfilePic string `json:"profile_pic"`
}

type CartItemRequest struct {
	DesignName         string  `json:"design_name"`
	Price              float64 `json:"price"`
	Quantity           int     `json:"quantity"`
	ImageURL           string  `json:"image_url"`
	PlacementPosition  string  `json:"placement_position"`
	DesignSide         string  `json:"design_side"`
	DesignWidth        int     `json:"design_width"`
	DesignHeight       int     `json:"design_height"`
	CustomRequirements string  `json:"custom_requirements"`
}

type SaveCartRequest struct {
	Username string            `json:"username"`
	Items    []CartItemRequest `json:"items"`
}

type WishlistItemRequest struct {
	DesignName string  `json:"design_name"`
	Price      float64 `json:"price"`
	ImageURL   string  `json:"image_url"`
}

type SaveWishlistRequest struct {
	Username string                `json:"username"`
	Items    []WishlistItemRequest `json:"items"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

type ReorderPreviewsRequest struct {
	PreviewIDs []uint `json:"preview_ids"`
}
