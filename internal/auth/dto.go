// AngelaMos | 2026
// dto.go

package auth

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,max=128"`
}

type UserView struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Role       string `json:"role"`
	IsVerified bool   `json:"isVerified"`
}

type OwnerView struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	ContactName string  `json:"contactName"`
	CompanyName *string `json:"companyName"`
	Role        string  `json:"role"`
}

type LoginResponse struct {
	Token string   `json:"token"`
	User  UserView `json:"user"`
}

type OwnerLoginResponse struct {
	Token string    `json:"token"`
	Owner OwnerView `json:"owner"`
}

type IdentityView struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	Role   string `json:"role"`
}

type MeResponse struct {
	Message string       `json:"message"`
	User    IdentityView `json:"user"`
}
