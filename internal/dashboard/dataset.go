package dashboard

import (
	"context"
	"errors"

	"github.com/aalokdhekne-creator/GBIF-Dashboard/internal/domain"
)

// MissingDatasetMessage is shown when the dashboard file does not exist.
const MissingDatasetMessage = "dataset not found, run the transcoder first"

// Dataset is the immutable table the dashboard serves, or the reason none is
// available. It is safe for concurrent use.
type Dataset struct {
	table   *domain.Table
	message string
}

// Loaded wraps a successfully loaded table.
func Loaded(t *domain.Table) *Dataset {
	return &Dataset{table: t}
}

// Unavailable records why no table could be loaded.
func Unavailable(message string) *Dataset {
	return &Dataset{message: message}
}

// Table returns the table, or nil and the message when unavailable.
func (d *Dataset) Table() (*domain.Table, string) {
	return d.table, d.message
}

// CheckReadiness reports an error until a table is loaded.
func (d *Dataset) CheckReadiness(_ context.Context) error {
	if d.table == nil {
		return errors.New(d.message)
	}
	return nil
}

// View computes the view for f, or an empty view carrying the message.
func (d *Dataset) View(f Filters, opts Options) ViewState {
	if d.table == nil {
		return EmptyView(d.message)
	}
	return ComputeView(d.table, f, opts)
}

// Choices returns the filter choices, empty when unavailable.
func (d *Dataset) Choices() Choices {
	if d.table == nil {
		return Choices{Countries: []string{}, Kingdoms: []string{}, Years: []int{}, Species: []string{}, Levels: LevelNames()}
	}
	return FilterChoices(d.table)
}
