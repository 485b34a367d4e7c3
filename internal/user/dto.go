// AngelaMos | 2026
// dto.go

package user

import (
	"net/url"
	"strings"
	"time"

	"github.com/turisgal/backend/internal/core"
)

type CreateUserRequest struct {
	Email     string `json:"email"     validate:"required,email,max=255"`
	Password  string `json:"password"  validate:"required,min=6,max=128"`
	FirstName string `json:"firstName" validate:"required,min=1,max=100"`
	LastName  string `json:"lastName"  validate:"required,min=1,max=100"`
}

// UpdateUserRequest is the admin edit payload. Nil fields are left as is.
type UpdateUserRequest struct {
	FirstName  *string `json:"firstName,omitempty"  validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"lastName,omitempty"   validate:"omitempty,min=1,max=100"`
	Email      *string `json:"email,omitempty"      validate:"omitempty,email,max=255"`
	Role       *string `json:"role,omitempty"       validate:"omitempty,oneof=ADMIN OWNER USER"`
	IsVerified *bool   `json:"isVerified,omitempty"`
}

type UpdateMeRequest struct {
	FirstName *string `json:"firstName,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"lastName,omitempty"  validate:"omitempty,min=1,max=100"`
	Email     *string `json:"email,omitempty"     validate:"omitempty,email,max=255"`
}

func (r UpdateMeRequest) asUpdate() UpdateUserRequest {
	return UpdateUserRequest{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Email:     r.Email,
	}
}

type ChangePasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=128"`
}

type UserResponse struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type UserDetailResponse struct {
	UserResponse
	Count Counts `json:"_count"`
}

type UserListResponse struct {
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int            `json:"total"`
	Users []UserResponse `json:"users"`
}

// Filter is the predicate shared by list and export.
type Filter struct {
	Search   string
	Role     string
	Verified *bool
	Created  core.DateRange
}

type ListParams struct {
	Filter
	core.PageParams
}

// ParseFilter reads search, role, verified, from and to. Unknown role
// and verified values are ignored; malformed dates are rejected.
func ParseFilter(q url.Values) (Filter, error) {
	created, err := core.ParseDateRange(q)
	if err != nil {
		return Filter{}, err
	}

	f := Filter{
		Search:   strings.TrimSpace(q.Get("search")),
		Verified: core.ParseBool(q.Get("verified")),
		Created:  created,
	}
	if role := strings.ToUpper(strings.TrimSpace(q.Get("role"))); core.ValidRole(role) {
		f.Role = role
	}

	return f, nil
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:         u.ID,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for i := range users {
		responses = append(responses, ToUserResponse(&users[i]))
	}
	return responses
}
