package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/gitcher/gitcher/internal/model"
)

// csvHeader is the column layout of the repository CSV export.
var csvHeader = []string{
	"Repository Name", "Description", "Language", "Stars", "Forks",
	"Size (KB)", "Last Updated", "URL",
}

// WriteExportCSV writes the repository list as CSV, one row per
// repository in the order given.
func WriteExportCSV(repos []model.Repository, w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, r := range repos {
		row := []string{
			r.Name,
			r.Description,
			r.Language,
			strconv.Itoa(r.Stars),
			strconv.Itoa(r.Forks),
			strconv.Itoa(r.Size),
			r.UpdatedAt.Format("2006-01-02"),
			r.HTMLURL,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
