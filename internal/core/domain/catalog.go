package domain

// ProductCategory is the upstream catalog taxonomy.
type ProductCategory string

const (
	CategoryFood    ProductCategory = "FOOD"
	CategoryNonFood ProductCategory = "NON_FOOD"
	CategoryClothes ProductCategory = "CLOTHES"
)

// Product is a catalog item. Price is the package (box) price; UnitQuantity is
// the pack size, and UnitPrice is an optional server-supplied per-unit price
// that overrides the client-side derivation when positive.
type Product struct {
	ID               int64           `json:"id"`
	Category         ProductCategory `json:"category"`
	ProductName      string          `json:"productName"`
	Price            int             `json:"price"`
	StockQuantity    int             `json:"stockQuantity"`
	UnitQuantity     int             `json:"unitQuantity"`
	UnitPrice        int             `json:"unitPrice,omitempty"`
	ImageURL         string          `json:"imageUrl"`
	DescriptionTitle string          `json:"descriptionTitle,omitempty"`
	Description      string          `json:"description,omitempty"`
}

// GroupPurchaseStatus is server-owned; the gateway only reads it.
type GroupPurchaseStatus string

const (
	GroupPurchaseOpen      GroupPurchaseStatus = "OPEN"
	GroupPurchaseCompleted GroupPurchaseStatus = "COMPLETED"
	GroupPurchaseCancelled GroupPurchaseStatus = "CANCELLED"
)

// GroupPurchase is the list-view snapshot of a campaign. List items may be
// stale; the join flow always re-fetches the authoritative detail.
type GroupPurchase struct {
	ID               int64               `json:"id"`
	RegionName       string              `json:"regionName,omitempty"`
	HostNickName     string              `json:"hostNickName,omitempty"`
	HostBuyQuantity  int                 `json:"hostBuyQuantity"`
	TargetQuantity   int                 `json:"targetQuantity"`
	CurrentQuantity  int                 `json:"currentQuantity"`
	MinimumOrderUnit int                 `json:"minimumOrderUnit"`
	GroupEndAt       string              `json:"groupEndAt"`
	PickupLocation   string              `json:"pickupLocation"`
	PickupAt         string              `json:"pickupAt"`
	PickupAfterEnd   bool                `json:"pickupAfterEnd,omitempty"`
	Status           GroupPurchaseStatus `json:"status,omitempty"`
}

// GroupPurchaseDetail is the authoritative per-campaign read model served by
// GET /api/group-purchases/{id}.
type GroupPurchaseDetail struct {
	GroupPurchaseID  int64               `json:"groupPurchaseId"`
	ProductID        int64               `json:"productId"`
	ProductName      string              `json:"productName"`
	TargetQuantity   int                 `json:"targetQuantity"`
	CurrentQuantity  int                 `json:"currentQuantity"`
	MinimumOrderUnit int                 `json:"minimumOrderUnit"`
	GroupEndAt       string              `json:"groupEndAt"`
	PickupLocation   string              `json:"pickupLocation"`
	PickupAt         string              `json:"pickupAt"`
	Status           GroupPurchaseStatus `json:"status,omitempty"`
}

// Participation is one buyer's commitment inside a campaign. Immutable from
// the gateway's perspective once created.
type Participation struct {
	ParticipationID int64  `json:"participationId"`
	GroupPurchaseID int64  `json:"groupPurchaseId,omitempty"`
	Quantity        int    `json:"quantity"`
	BuyerContact    string `json:"buyerContact,omitempty"`
	ShareAmount     int    `json:"shareAmount,omitempty"`
	Status          string `json:"status,omitempty"`
	CreatedAt       string `json:"createdAt,omitempty"`
}
