// AngelaMos | 2026
// entity.go

package property

import "time"

type Property struct {
	ID           string      `db:"id"`
	OwnerID      string      `db:"owner_id"`
	Name         string      `db:"name"`
	Description  *string     `db:"description"`
	PropertyType string      `db:"property_type"`
	Address      Address     `db:"address"`
	TotalRooms   int         `db:"total_rooms"`
	MaxGuests    int         `db:"max_guests"`
	Amenities    *StringList `db:"amenities"`
	HouseRules   *string     `db:"house_rules"`
	CheckInTime  *time.Time  `db:"check_in_time"`
	CheckOutTime *time.Time  `db:"check_out_time"`
	QRCodeData   string      `db:"qr_code_data"`
	Images       *StringList `db:"images"`
	IsActive     bool        `db:"is_active"`
	CreatedAt    time.Time   `db:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at"`
}

type Room struct {
	ID            string    `db:"id"              json:"id"`
	PropertyID    string    `db:"property_id"     json:"propertyId"`
	RoomNumber    string    `db:"room_number"     json:"roomNumber"`
	RoomType      string    `db:"room_type"       json:"roomType"`
	MaxGuests     int       `db:"max_guests"      json:"maxGuests"`
	PricePerNight float64   `db:"price_per_night" json:"pricePerNight"`
	QRCodeData    string    `db:"qr_code_data"    json:"qrCodeData"`
	IsAvailable   bool      `db:"is_available"    json:"isAvailable"`
	CreatedAt     time.Time `db:"created_at"      json:"createdAt"`
}

// OwnerSummary is the owner projection embedded in property views.
// Phone is only loaded for the detail view.
type OwnerSummary struct {
	ID          string  `db:"id"           json:"id"`
	ContactName string  `db:"contact_name" json:"contactName"`
	Email       string  `db:"email"        json:"email"`
	CompanyName *string `db:"company_name" json:"companyName"`
	Phone       *string `db:"phone"        json:"phone,omitempty"`
}

type Counts struct {
	Rooms    int `db:"rooms"    json:"rooms"`
	Bookings int `db:"bookings" json:"bookings"`
	Reviews  int `db:"reviews"  json:"reviews"`
}

// Item is a property with its owner summary, rooms and counts.
type Item struct {
	Property
	Owner OwnerSummary `db:"owner"`
	Counts
	RoomList []Room `db:"-"`
}

type Guest struct {
	FirstName string `db:"first_name" json:"firstName"`
	LastName  string `db:"last_name"  json:"lastName"`
	Email     string `db:"email"      json:"email,omitempty"`
}

type RecentBooking struct {
	ID           string    `db:"id"             json:"id"`
	CheckInDate  time.Time `db:"check_in_date"  json:"checkInDate"`
	CheckOutDate time.Time `db:"check_out_date" json:"checkOutDate"`
	Guests       int       `db:"guests"         json:"guests"`
	TotalPrice   float64   `db:"total_price"    json:"totalPrice"`
	Status       string    `db:"status"         json:"status"`
	CreatedAt    time.Time `db:"created_at"     json:"createdAt"`
	User         Guest     `db:"user"           json:"user"`
}

type RecentReview struct {
	ID        string    `db:"id"         json:"id"`
	Rating    int       `db:"rating"     json:"rating"`
	Comment   *string   `db:"comment"    json:"comment"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	User      Guest     `db:"user"       json:"user"`
}

// Detail is the single-property view with recent activity.
type Detail struct {
	Item
	RecentBookings []RecentBooking
	RecentReviews  []RecentReview
}

type TypeCount struct {
	Type  string `db:"type"  json:"type"`
	Count int    `db:"count" json:"count"`
}

type TopProperty struct {
	ID            string `db:"id"             json:"id"`
	Name          string `db:"name"           json:"name"`
	BookingsCount int    `db:"bookings_count" json:"bookingsCount"`
}

type Stats struct {
	TotalProperties    int           `db:"total_properties"    json:"totalProperties"`
	ActiveProperties   int           `db:"active_properties"   json:"activeProperties"`
	InactiveProperties int           `db:"inactive_properties" json:"inactiveProperties"`
	TotalRooms         int           `db:"total_rooms"         json:"totalRooms"`
	AvailableRooms     int           `db:"available_rooms"     json:"availableRooms"`
	PropertiesByType   []TypeCount   `db:"-"                   json:"propertiesByType"`
	TopProperties      []TopProperty `db:"-"                   json:"topProperties"`
}

type ExportRow struct {
	Property
	OwnerContactName string  `db:"owner_contact_name"`
	OwnerEmail       string  `db:"owner_email"`
	OwnerCompanyName *string `db:"owner_company_name"`
	Counts
}
