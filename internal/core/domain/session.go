package domain

// UserType classifies the actor behind a gateway session.
type UserType string

const (
	UserTypeGuest  UserType = "GUEST"
	UserTypeBuyer  UserType = "BUYER"
	UserTypeSeller UserType = "SELLER"
)

// LawDong is a resolved administrative region (시/도 → 시/군/구 → 동).
type LawDong struct {
	ID      int64  `json:"id"`
	LawCode string `json:"lawCode,omitempty"`
	Sido    string `json:"sido"`
	Sigungu string `json:"sigungu"`
	Dong    string `json:"dong"`
}

// Session is the denormalized auth profile held for one browser session.
// Invariant: IsLoggedIn == false implies UserType == GUEST.
type Session struct {
	IsLoggedIn bool     `json:"isLoggedIn"`
	UserType   UserType `json:"userType"`

	ID           int64  `json:"id,omitempty"`
	Email        string `json:"email,omitempty"`
	Name         string `json:"name,omitempty"`
	NickName     string `json:"nickName,omitempty"`
	Role         string `json:"role,omitempty"`
	AuthProvider string `json:"authProvider,omitempty"`

	LawDong *LawDong `json:"lawDong,omitempty"`

	// MarketName is set for sellers only.
	MarketName string `json:"marketName,omitempty"`
}

// GuestSession is the default returned whenever no valid session exists.
func GuestSession() Session {
	return Session{IsLoggedIn: false, UserType: UserTypeGuest}
}

// Normalize enforces the session invariant: a logged-out session is always a
// plain guest, and a logged-in session without a user type defaults to buyer.
func (s Session) Normalize() Session {
	if !s.IsLoggedIn {
		return GuestSession()
	}
	if s.UserType != UserTypeBuyer && s.UserType != UserTypeSeller {
		s.UserType = UserTypeBuyer
	}
	return s
}

// RegionID returns the resolved law-dong id, or 0 when no region is registered.
func (s Session) RegionID() int64 {
	if s.LawDong == nil {
		return 0
	}
	return s.LawDong.ID
}

// LoginResult is the payload the upstream auth endpoints return on success:
// a token pair plus the denormalized profile.
type LoginResult struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`

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

// Session builds the persisted session profile from a login payload.
func (r LoginResult) Session() Session {
	return Session{
		IsLoggedIn:   true,
		UserType:     r.UserType,
		ID:           r.ID,
		Email:        r.Email,
		Name:         r.Name,
		NickName:     r.NickName,
		Role:         r.Role,
		AuthProvider: r.AuthProvider,
		LawDong:      r.LawDong,
		MarketName:   r.MarketName,
	}.Normalize()
}
