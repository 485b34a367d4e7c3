// AngelaMos | 2026
// export.go

package user

import (
	"strconv"

	"github.com/turisgal/backend/internal/core"
)

const exportFilename = "usuarios.csv"

var exportHeader = []string{
	"id",
	"email",
	"nombre",
	"apellidos",
	"rol",
	"verificado",
	"reservas",
	"fechaCreacion",
}

func exportRecords(rows []ExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.ID,
			row.Email,
			row.FirstName,
			row.LastName,
			row.Role,
			core.YesNo(row.IsVerified),
			strconv.Itoa(row.Bookings),
			core.FormatDate(row.CreatedAt),
		})
	}
	return out
}
