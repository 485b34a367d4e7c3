// AngelaMos | 2026
// export.go

package owner

import (
	"strconv"

	"github.com/turisgal/backend/internal/core"
)

const exportFilename = "propietarios.csv"

var exportHeader = []string{
	"id",
	"email",
	"contacto",
	"empresa",
	"telefono",
	"nif",
	"propiedades",
	"fechaCreacion",
}

func exportRecords(rows []ExportRow) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		out = append(out, []string{
			row.ID,
			row.Email,
			row.ContactName,
			core.Deref(row.CompanyName),
			core.Deref(row.Phone),
			core.Deref(row.TaxID),
			strconv.Itoa(row.Properties),
			core.FormatDate(row.CreatedAt),
		})
	}
	return out
}
