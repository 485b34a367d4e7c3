// AngelaMos | 2026
// dto.go

package property

import (
	"net/url"
	"strings"
	"time"

	"github.com/turisgal/backend/internal/core"
)

type CreatePropertyRequest struct {
	Name         string      `json:"name"         validate:"required,max=200"`
	Description  *string     `json:"description"`
	PropertyType string      `json:"propertyType" validate:"required,max=100"`
	Address      *Address    `json:"address"      validate:"required"`
	TotalRooms   int         `json:"totalRooms"   validate:"omitempty,min=1"`
	MaxGuests    int         `json:"maxGuests"    validate:"required,min=1"`
	Amenities    *StringList `json:"amenities"`
	HouseRules   *string     `json:"houseRules"`
	CheckInTime  *Timestamp  `json:"checkInTime"`
	CheckOutTime *Timestamp  `json:"checkOutTime"`
	Images       *StringList `json:"images"`
	IsActive     *bool       `json:"isActive"`
	OwnerID      string      `json:"ownerId"`
}

// UpdatePropertyRequest edits a property. Empty name and type strings
// and zero counts are ignored; Optional fields are replaced whenever
// present, null clears them.
type UpdatePropertyRequest struct {
	Name         *string                   `json:"name"         validate:"omitempty,max=200"`
	Description  core.Optional[string]     `json:"description"`
	PropertyType *string                   `json:"propertyType" validate:"omitempty,max=100"`
	Address      *Address                  `json:"address"`
	TotalRooms   *int                      `json:"totalRooms"   validate:"omitempty,min=0"`
	MaxGuests    *int                      `json:"maxGuests"    validate:"omitempty,min=0"`
	Amenities    core.Optional[StringList] `json:"amenities"`
	HouseRules   core.Optional[string]     `json:"houseRules"`
	CheckInTime  core.Optional[Timestamp]  `json:"checkInTime"`
	CheckOutTime core.Optional[Timestamp]  `json:"checkOutTime"`
	Images       core.Optional[StringList] `json:"images"`
	IsActive     *bool                     `json:"isActive"`
}

type PropertyResponse struct {
	ID           string      `json:"id"`
	OwnerID      string      `json:"ownerId"`
	Name         string      `json:"name"`
	Description  *string     `json:"description"`
	PropertyType string      `json:"propertyType"`
	Address      Address     `json:"address"`
	TotalRooms   int         `json:"totalRooms"`
	MaxGuests    int         `json:"maxGuests"`
	Amenities    *StringList `json:"amenities"`
	HouseRules   *string     `json:"houseRules"`
	CheckInTime  *time.Time  `json:"checkInTime"`
	CheckOutTime *time.Time  `json:"checkOutTime"`
	QRCodeData   string      `json:"qrCodeData"`
	Images       *StringList `json:"images"`
	IsActive     bool        `json:"isActive"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

type ItemResponse struct {
	PropertyResponse
	Owner OwnerSummary `json:"owner"`
	Rooms []Room       `json:"rooms"`
	Count Counts       `json:"_count"`
}

type DetailResponse struct {
	ItemResponse
	Bookings []RecentBooking `json:"bookings"`
	Reviews  []RecentReview  `json:"reviews"`
}

type MutationResponse struct {
	Message  string       `json:"message"`
	Property ItemResponse `json:"property"`
}

type ListResponse struct {
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	Total      int            `json:"total"`
	Properties []ItemResponse `json:"properties"`
}

type Filter struct {
	Search       string
	PropertyType string
	IsActive     *bool
	OwnerID      string
	Created      core.DateRange
}

type ListParams struct {
	Filter
	core.PageParams
}

// ParseFilter reads search, propertyType, isActive, ownerId, from and to.
// Any isActive value other than "true" selects inactive properties.
func ParseFilter(q url.Values) (Filter, error) {
	created, err := core.ParseDateRange(q)
	if err != nil {
		return Filter{}, err
	}

	f := Filter{
		Search:       strings.TrimSpace(q.Get("search")),
		PropertyType: strings.TrimSpace(q.Get("propertyType")),
		OwnerID:      strings.TrimSpace(q.Get("ownerId")),
		Created:      created,
	}
	if q.Has("isActive") {
		active := q.Get("isActive") == "true"
		f.IsActive = &active
	}

	return f, nil
}

func ToPropertyResponse(p *Property) PropertyResponse {
	return PropertyResponse{
		ID:           p.ID,
		OwnerID:      p.OwnerID,
		Name:         p.Name,
		Description:  p.Description,
		PropertyType: p.PropertyType,
		Address:      p.Address,
		TotalRooms:   p.TotalRooms,
		MaxGuests:    p.MaxGuests,
		Amenities:    p.Amenities,
		HouseRules:   p.HouseRules,
		CheckInTime:  p.CheckInTime,
		CheckOutTime: p.CheckOutTime,
		QRCodeData:   p.QRCodeData,
		Images:       p.Images,
		IsActive:     p.IsActive,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func ToItemResponse(item *Item) ItemResponse {
	rooms := item.RoomList
	if rooms == nil {
		rooms = []Room{}
	}
	return ItemResponse{
		PropertyResponse: ToPropertyResponse(&item.Property),
		Owner:            item.Owner,
		Rooms:            rooms,
		Count:            item.Counts,
	}
}

func ToItemResponseList(items []Item) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToItemResponse(&items[i]))
	}
	return out
}

func ToDetailResponse(d *Detail) DetailResponse {
	bookings := d.RecentBookings
	if bookings == nil {
		bookings = []RecentBooking{}
	}
	reviews := d.RecentReviews
	if reviews == nil {
		reviews = []RecentReview{}
	}
	return DetailResponse{
		ItemResponse: ToItemResponse(&d.Item),
		Bookings:     bookings,
		Reviews:      reviews,
	}
}
