// AngelaMos | 2026
// data.go

package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/turisgal/backend/internal/core"
	"github.com/turisgal/backend/internal/owner"
	"github.com/turisgal/backend/internal/property"
)

type seedUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Role      string
	Verified  bool
}

type seedOwner struct {
	Email       string
	Password    string
	ContactName string
	CompanyName string
	Phone       string
	TaxID       string
	Permissions owner.Permissions
}

// seedProperty references its owner by index into seedOwners.
type seedProperty struct {
	Owner       int
	Name        string
	Description string
	Type        string
	Address     property.Address
	TotalRooms  int
	MaxGuests   int
	Amenities   property.StringList
	HouseRules  string
	CheckIn     int
	CheckOut    int
	QRCode      string
	Images      property.StringList
	Rooms       func(propertyID string) []property.Room
}

var seedUsers = []seedUser{
	{"admin@turisgal.com", "admin123", "Carlos", "Administrador", core.RoleAdmin, true},
	{"manager@turisgal.com", "manager123", "Ana", "Manager", core.RoleOwner, true},
	{"user@turisgal.com", "user123", "Juan", "Usuario", core.RoleUser, true},
	{"test@ejemplo.com", "test123", "María", "Test", core.RoleUser, false},
}

var seedOwners = []seedOwner{
	{
		Email:       "propietario1@turisgal.com",
		Password:    "owner123",
		ContactName: "Miguel Fernández",
		CompanyName: "Galicia Turismo SL",
		Phone:       "+34 981 123 456",
		TaxID:       "B15123456",
		Permissions: owner.Permissions{CanManageProperties: true, CanViewReports: true, CanManageBookings: true},
	},
	{
		Email:       "propietario2@turisgal.com",
		Password:    "owner456",
		ContactName: "Carmen González",
		CompanyName: "Rías Altas Hospedaje",
		Phone:       "+34 986 789 012",
		TaxID:       "B36789012",
		Permissions: owner.Permissions{CanManageProperties: true, CanViewReports: false, CanManageBookings: true},
	},
}

var seedProperties = []seedProperty{
	{
		Owner:       0,
		Name:        "Hotel Ría de Arousa",
		Description: "Encantador hotel boutique ubicado en primera línea de mar con vistas espectaculares a la Ría de Arousa. Perfecto para una escapada romántica o vacaciones familiares.",
		Type:        "Hotel",
		Address: property.Address{
			Street: "Paseo Marítimo, 15", City: "Vilagarcía de Arousa", State: "Pontevedra",
			Country: "España", ZipCode: "36600",
			Coordinates: &property.Coordinates{Lat: 42.5959, Lng: -8.7706},
		},
		TotalRooms: 20,
		MaxGuests:  4,
		Amenities: property.StringList{
			"WiFi gratis", "Aire acondicionado", "Calefacción", "TV por cable", "Minibar",
			"Caja fuerte", "Balcón con vistas al mar", "Restaurante", "Bar",
			"Piscina exterior", "Spa", "Gimnasio", "Aparcamiento",
		},
		HouseRules: "Check-in: 15:00 - 22:00. Check-out: 12:00. No se permiten mascotas. No fumar en las habitaciones.",
		CheckIn:    15,
		CheckOut:   12,
		QRCode:     "property_arousa_hotel_2024",
		Images:     exampleImages("hotel-arousa", "exterior", "lobby", "room", "pool"),
		Rooms:      hotelRooms,
	},
	{
		Owner:       0,
		Name:        "Casa Rural O Muíño",
		Description: "Acogedora casa rural restaurada del siglo XVIII, rodeada de naturaleza en pleno corazón de Galicia. Ideal para desconectar y disfrutar del turismo rural.",
		Type:        "Casa Rural",
		Address: property.Address{
			Street: "Lugar de Muíños, 7", City: "Palas de Rei", State: "Lugo",
			Country: "España", ZipCode: "27200",
			Coordinates: &property.Coordinates{Lat: 42.8718, Lng: -7.8646},
		},
		TotalRooms: 8,
		MaxGuests:  6,
		Amenities: property.StringList{
			"WiFi gratis", "Calefacción", "Chimenea", "Cocina completa", "Lavadora",
			"Jardín", "Barbacoa", "Aparcamiento gratuito", "Zona de juegos infantil",
			"Rutas de senderismo", "Bicicletas disponibles",
		},
		HouseRules: "Check-in: 16:00 - 20:00. Check-out: 11:00. Se admiten mascotas pequeñas (consultar). Respetar el descanso de otros huéspedes.",
		CheckIn:    16,
		CheckOut:   11,
		QRCode:     "property_muino_rural_2024",
		Images:     exampleImages("casa-muino", "exterior", "salon", "cocina", "jardin"),
		Rooms:      ruralRooms,
	},
	{
		Owner:       1,
		Name:        "Apartamentos Playa de Samil",
		Description: "Modernos apartamentos a 100 metros de la playa de Samil en Vigo. Totalmente equipados con todas las comodidades para una estancia perfecta.",
		Type:        "Apartamento",
		Address: property.Address{
			Street: "Avenida de Samil, 142", City: "Vigo", State: "Pontevedra",
			Country: "España", ZipCode: "36213",
			Coordinates: &property.Coordinates{Lat: 42.1754, Lng: -8.7575},
		},
		TotalRooms: 12,
		MaxGuests:  4,
		Amenities: property.StringList{
			"WiFi gratis", "Aire acondicionado", "Calefacción", "Cocina completamente equipada",
			"Lavadora", "Lavavajillas", "TV Smart", "Balcón", "Cerca de la playa",
			"Supermercado cercano", "Transporte público",
		},
		HouseRules: "Check-in: 15:00 - 21:00. Check-out: 11:00. No se permiten fiestas. Máximo 4 personas por apartamento.",
		CheckIn:    15,
		CheckOut:   11,
		QRCode:     "property_samil_apartments_2024",
		Images:     exampleImages("apt-samil", "exterior", "salon", "cocina", "terraza"),
	},
	{
		Owner:       1,
		Name:        "Hostal Camino de Santiago",
		Description: "Acogedor hostal ubicado en el Camino de Santiago, perfecto para peregrinos y viajeros. Ambiente familiar y servicios pensados para el descanso del caminante.",
		Type:        "Hostal",
		Address: property.Address{
			Street: "Rúa do Peregrino, 28", City: "Santiago de Compostela", State: "A Coruña",
			Country: "España", ZipCode: "15704",
			Coordinates: &property.Coordinates{Lat: 42.8805, Lng: -8.5456},
		},
		TotalRooms: 15,
		MaxGuests:  2,
		Amenities: property.StringList{
			"WiFi gratis", "Calefacción", "Cocina compartida", "Lavandería",
			"Consigna de equipajes", "Credencial del Camino", "Información turística",
			"Desayuno disponible", "Zona común", "Cerca de la Catedral",
		},
		HouseRules: "Check-in: 14:00 - 22:00. Check-out: 08:00 - 11:00. Respeto absoluto al descanso. Silencio a partir de las 22:00.",
		CheckIn:    14,
		CheckOut:   11,
		QRCode:     "property_camino_hostal_2024",
		Images:     exampleImages("hostal-camino", "exterior", "habitacion", "cocina", "salon"),
	},
}

func exampleImages(slug string, views ...string) property.StringList {
	out := make(property.StringList, 0, len(views))
	for _, v := range views {
		out = append(out, fmt.Sprintf("https://example.com/%s-%s.jpg", slug, v))
	}
	return out
}

// hotelRooms numbers rooms by floor: 101..110 then 211..220. The last
// five are suites.
func hotelRooms(propertyID string) []property.Room {
	rooms := make([]property.Room, 0, 20)
	for i := 1; i <= 20; i++ {
		room := property.Room{
			PropertyID:    propertyID,
			RoomNumber:    fmt.Sprintf("%d%02d", (i-1)/10+1, i),
			RoomType:      "Estándar",
			MaxGuests:     2,
			PricePerNight: 85,
			QRCodeData:    fmt.Sprintf("room_arousa_%d_2024", i),
			IsAvailable:   true,
		}
		if i > 15 {
			room.RoomType, room.MaxGuests, room.PricePerNight = "Suite", 4, 120
		}
		rooms = append(rooms, room)
	}
	return rooms
}

func ruralRooms(propertyID string) []property.Room {
	kinds := []struct {
		name   string
		guests int
		price  float64
	}{
		{"Doble", 2, 65},
		{"Familiar", 4, 95},
		{"Individual", 1, 45},
	}

	rooms := make([]property.Room, 0, 8)
	for i := 1; i <= 8; i++ {
		kind := kinds[i%len(kinds)]
		rooms = append(rooms, property.Room{
			PropertyID:    propertyID,
			RoomNumber:    fmt.Sprintf("R%d", i),
			RoomType:      kind.name,
			MaxGuests:     kind.guests,
			PricePerNight: kind.price,
			QRCodeData:    fmt.Sprintf("room_muino_%d_2024", i),
			IsAvailable:   true,
		})
	}
	return rooms
}

func clock(hour int) *time.Time {
	t := time.Date(2024, time.January, 1, hour, 0, 0, 0, time.UTC)
	return &t
}

func optional(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
