package listing

import (
	"context"
	"encoding/csv"
	"io"

	dErrors "enquiries/pkg/domain-errors"
	"enquiries/pkg/requestcontext"
)

// exportColumns is the column table minus the actions column, which only
// exists on screen.
const exportColumns = 15

// ExportCSV writes the filtered and searched records as CSV, default order,
// no pagination.
func (s *Service) ExportCSV(ctx context.Context, req Request, w io.Writer) error {
	enquiries, err := s.Stream(ctx, req)
	if err != nil {
		return err
	}

	now := requestcontext.Now(ctx)
	rows, err := s.render(ctx, enquiries, now)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := make([]string, 0, exportColumns)
	for _, col := range Columns[:exportColumns] {
		header = append(header, col.Name)
	}
	if err := cw.Write(header); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write csv header")
	}

	record := make([]string, exportColumns)
	for _, row := range rows {
		for i := range exportColumns {
			record[i] = row.Cells[i].Text
		}
		if err := cw.Write(record); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "write csv record")
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "flush csv")
	}
	return nil
}
