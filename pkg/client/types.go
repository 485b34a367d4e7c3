// AngelaMos | 2026
// types.go

package client

import (
	"encoding/json"
	"time"
)

// Response is the unwrapped result of an API call. Success is false for
// any non-2xx status; Error then carries the server's message verbatim.
type Response[T any] struct {
	Success    bool
	StatusCode int
	Data       T
	Message    string
	Error      string
}

type User struct {
	ID         string     `json:"id"`
	Email      string     `json:"email"`
	FirstName  string     `json:"firstName"`
	LastName   string     `json:"lastName"`
	Role       string     `json:"role"`
	IsVerified bool       `json:"isVerified"`
	CreatedAt  time.Time  `json:"createdAt"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
	Count      *struct {
		Bookings int `json:"bookings"`
		Reviews  int `json:"reviews"`
	} `json:"_count,omitempty"`
}

type PropertyOwner struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	ContactName string    `json:"contactName"`
	CompanyName *string   `json:"companyName,omitempty"`
	Phone       *string   `json:"phone,omitempty"`
	TaxID       *string   `json:"taxId,omitempty"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
	Count       *struct {
		Properties int `json:"properties"`
	} `json:"_count,omitempty"`
}

type OwnerSummary struct {
	ID          string  `json:"id"`
	ContactName string  `json:"contactName"`
	CompanyName *string `json:"companyName,omitempty"`
	Email       string  `json:"email"`
}

type PropertyCounts struct {
	Rooms    int `json:"rooms"`
	Bookings int `json:"bookings"`
	Reviews  int `json:"reviews"`
}

// Property keeps address, amenities and images raw; their shape is
// owned by the server.
type Property struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  *string         `json:"description,omitempty"`
	PropertyType string          `json:"propertyType"`
	Address      json.RawMessage `json:"address"`
	TotalRooms   int             `json:"totalRooms"`
	MaxGuests    int             `json:"maxGuests"`
	Amenities    json.RawMessage `json:"amenities,omitempty"`
	HouseRules   *string         `json:"houseRules,omitempty"`
	CheckInTime  *string         `json:"checkInTime,omitempty"`
	CheckOutTime *string         `json:"checkOutTime,omitempty"`
	QRCodeData   string          `json:"qrCodeData"`
	Images       json.RawMessage `json:"images,omitempty"`
	IsActive     bool            `json:"isActive"`
	CreatedAt    time.Time       `json:"createdAt"`
	OwnerID      string          `json:"ownerId"`
	Owner        *OwnerSummary   `json:"owner,omitempty"`
	Count        *PropertyCounts `json:"_count,omitempty"`
}

type LoginResponse struct {
	Token string `json:"token"`
	User  struct {
		ID         string `json:"id"`
		Email      string `json:"email"`
		FirstName  string `json:"firstName"`
		LastName   string `json:"lastName"`
		Role       string `json:"role"`
		IsVerified bool   `json:"isVerified"`
	} `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type PropertyMutation struct {
	Message  string   `json:"message"`
	Property Property `json:"property"`
}

type UsersResponse struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Total int    `json:"total"`
	Users []User `json:"users"`
}

type PropertiesResponse struct {
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	Total      int        `json:"total"`
	Properties []Property `json:"properties"`
}

type PropertyOwnersResponse struct {
	Page   int             `json:"page"`
	Limit  int             `json:"limit"`
	Total  int             `json:"total"`
	Owners []PropertyOwner `json:"owners"`
}

type PropertyStats struct {
	TotalProperties    int `json:"totalProperties"`
	ActiveProperties   int `json:"activeProperties"`
	InactiveProperties int `json:"inactiveProperties"`
	TotalRooms         int `json:"totalRooms"`
	AvailableRooms     int `json:"availableRooms"`
	PropertiesByType   []struct {
		Type  string `json:"type"`
		Count int    `json:"count"`
	} `json:"propertiesByType"`
	TopProperties []struct {
		ID            string `json:"id"`
		Name          string `json:"name"`
		BookingsCount int    `json:"bookingsCount"`
	} `json:"topProperties"`
}

type CreateUserRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

type UpdateUserRequest struct {
	FirstName  *string `json:"firstName,omitempty"`
	LastName   *string `json:"lastName,omitempty"`
	Email      *string `json:"email,omitempty"`
	Role       *string `json:"role,omitempty"`
	IsVerified *bool   `json:"isVerified,omitempty"`
}

// UserQuery filters user listings and exports. Zero fields are omitted.
type UserQuery struct {
	Page     int
	Limit    int
	Search   string
	Verified *bool
	From     string
	To       string
}

type PropertyQuery struct {
	Page         int
	Limit        int
	Search       string
	PropertyType string
	IsActive     *bool
	OwnerID      string
}

type OwnerQuery struct {
	Page   int
	Limit  int
	Search string
}
