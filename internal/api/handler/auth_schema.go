package handler

// errorResponse documents the error envelope produced by the central error
// handler. It is never built here; it exists for the OpenAPI annotations.
type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type signupRequest struct {
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=8"`
	Name      string `json:"name"      validate:"required"`
	NickName  string `json:"nickName"  validate:"required"`
	UserType  string `json:"userType"  validate:"required,oneof=BUYER SELLER"`
	LawDongID int64  `json:"lawDongId" validate:"required,gt=0"`
}

type oauth2SignupRequest struct {
	NickName  string `json:"nickName"  validate:"required"`
	UserType  string `json:"userType"  validate:"required,oneof=BUYER SELLER"`
	LawDongID int64  `json:"lawDongId" validate:"required,gt=0"`
}
