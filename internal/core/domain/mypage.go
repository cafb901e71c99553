package domain

import "time"

// Profile is the upstream my-page profile, used to hydrate a session whose
// nickname or region was missing at login time.
type Profile struct {
	ID           int64    `json:"id"`
	Email        string   `json:"email"`
	Name         string   `json:"name"`
	NickName     string   `json:"nickName"`
	Role         string   `json:"role"`
	AuthProvider string   `json:"authProvider"`
	UserType     UserType `json:"userType"`
	LawDong      *LawDong `json:"lawDong,omitempty"`
	MarketName   string   `json:"marketName,omitempty"`
}

// Session converts the profile into a logged-in session snapshot.
func (p Profile) Session() Session {
	return Session{
		IsLoggedIn:   true,
		UserType:     p.UserType,
		ID:           p.ID,
		Email:        p.Email,
		Name:         p.Name,
		NickName:     p.NickName,
		Role:         p.Role,
		AuthProvider: p.AuthProvider,
		LawDong:      p.LawDong,
		MarketName:   p.MarketName,
	}.Normalize()
}

// ParticipationSummary is one row of the my-page participation lists.
type ParticipationSummary struct {
	ParticipationID int64  `json:"participationId"`
	GroupPurchaseID int64  `json:"groupPurchaseId"`
	ProductName     string `json:"productName"`
	ImageURL        string `json:"imageUrl,omitempty"`
	Quantity        int    `json:"quantity"`
	ShareAmount     int    `json:"shareAmount"`
	Status          string `json:"status"`
	GroupEndAt      string `json:"groupEndAt,omitempty"`
}

// CompletedOrder is the detail view of a finished participation.
type CompletedOrder struct {
	ParticipationID int64  `json:"participationId"`
	ProductName     string `json:"productName"`
	Quantity        int    `json:"quantity"`
	ShareAmount     int    `json:"shareAmount"`
	PickupLocation  string `json:"pickupLocation"`
	PickupAt        string `json:"pickupAt"`
	CompletedAt     string `json:"completedAt,omitempty"`
}

// ProductView is one recently-viewed catalog entry for a logged-in user.
type ProductView struct {
	UserID      int64     `json:"userId"`
	ProductID   int64     `json:"productId"`
	ProductName string    `json:"productName"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Price       int       `json:"price"`
	ViewedAt    time.Time `json:"viewedAt"`
}
