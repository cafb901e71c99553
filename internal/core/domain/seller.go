package domain

// BusinessInfo is a seller's registered business record.
type BusinessInfo struct {
	ID             int64  `json:"id"`
	UserID         int64  `json:"userId"`
	BusinessNumber string `json:"businessNumber"`
	StoreName      string `json:"storeName"`
	CEOName        string `json:"ceoName"`
	Address        string `json:"address"`
}

// DashboardSales summarizes a seller's sales figures.
type DashboardSales struct {
	TotalSales      int `json:"totalSales"`
	TotalOrders     int `json:"totalOrders"`
	OngoingGroupBuy int `json:"ongoingGroupBuy"`
}

// DashboardProduct is one row of the seller's product performance table.
type DashboardProduct struct {
	ProductID   int64  `json:"productId"`
	ProductName string `json:"productName"`
	SoldCount   int    `json:"soldCount"`
	Revenue     int    `json:"revenue"`
}

// MonthlySales is one month of aggregated revenue.
type MonthlySales struct {
	Month   string `json:"month"`
	Revenue int    `json:"revenue"`
}
