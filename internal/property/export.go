// AngelaMos | 2026
// export.go

package property

import (
	"strconv"

	"github.com/turisgal/backend/internal/core"
)

const exportFilename = "propiedades.csv"

var exportHeader = []string{
	"id",
	"nombre",
	"descripcion",
	"tipoPropiedad",
	"propietario",
	"emailPropietario",
	"empresa",
	"habitaciones",
	"maxHuespedes",
	"reservas",
	"resenas",
	"activa",
	"fechaCreacion",
}

func exportRecords(rows []ExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.ID,
			row.Name,
			core.Deref(row.Description),
			row.PropertyType,
			row.OwnerContactName,
			row.OwnerEmail,
			core.Deref(row.OwnerCompanyName),
			strconv.Itoa(row.Rooms),
			strconv.Itoa(row.MaxGuests),
			strconv.Itoa(row.Bookings),
			strconv.Itoa(row.Reviews),
			core.YesNo(row.IsActive),
			core.FormatDate(row.CreatedAt),
		})
	}
	return out
}
