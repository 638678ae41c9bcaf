package export

import (
	"fmt"

	"outgo/internal/core"
)

type Format string

const (
	FormatCSV    Format = "csv"
	FormatJSON   Format = "json"
	FormatReport Format = "report"
)

// ColumnSet selects which columns tabular serializers emit.
type ColumnSet int

const (
	// ColumnsBasic is Date, Category, Amount, Description.
	ColumnsBasic ColumnSet = iota
	// ColumnsExtended adds the Created At and Updated At timestamps.
	ColumnsExtended
	// ColumnsMinimal is Date, Category, Amount only.
	ColumnsMinimal
)

// RenderSpec is the content variant handed to a serializer, derived from
// the export template (or defaults for direct exports).
type RenderSpec struct {
	Title         string
	Subtitle      string
	Columns       ColumnSet
	IncludeTotals bool // CSV: append blank row + TOTAL summary row
	CategoryOnly  bool // report: breakdown only, no transaction table
}

// Serializer renders a filtered expense list in one output format. Each
// format registers one implementation; adding a format means adding a
// registry entry, not editing a dispatch switch.
type Serializer interface {
	Serialize(expenses []core.Expense, spec RenderSpec) ([]byte, error)
	Extension() string
	ContentType() string
}

var serializers = map[Format]Serializer{
	FormatCSV:    csvSerializer{},
	FormatJSON:   jsonSerializer{},
	FormatReport: reportSerializer{},
}

func serializerFor(f Format) (Serializer, error) {
	ser, ok := serializers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	return ser, nil
}

// Register adds or replaces a serializer for a format.
func Register(f Format, s Serializer) {
	serializers[f] = s
}
