package services

import (
	"errors"

	"outgo/internal/export"
)

// ErrUnknownTemplate is returned when an export names a template id that
// is not in the catalog.
var ErrUnknownTemplate = errors.New("unknown export template")

// Template is a preconfigured export: a format plus the render variant
// handed to its serializer. The catalog is fixed; users pick, they don't
// author.
type Template struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Format      export.Format `json:"format"`

	Spec export.RenderSpec `json:"-"`
}

var templateCatalog = []Template{
	{
		ID:          "tax-report",
		Name:        "Tax Report",
		Description: "Complete yearly report formatted for tax filing",
		Format:      export.FormatReport,
		Spec:        export.RenderSpec{Title: "Tax Report", Subtitle: "Prepared for tax filing"},
	},
	{
		ID:          "monthly-summary",
		Name:        "Monthly Summary",
		Description: "Monthly spending overview with category totals",
		Format:      export.FormatReport,
		Spec:        export.RenderSpec{Title: "Monthly Summary"},
	},
	{
		ID:          "category-analysis",
		Name:        "Category Analysis",
		Description: "Spending breakdown by category, no transaction detail",
		Format:      export.FormatReport,
		Spec:        export.RenderSpec{Title: "Category Analysis", CategoryOnly: true},
	},
	{
		ID:          "detailed-report",
		Name:        "Detailed Report",
		Description: "Every field including record timestamps, with totals",
		Format:      export.FormatCSV,
		Spec:        export.RenderSpec{Columns: export.ColumnsExtended, IncludeTotals: true},
	},
	{
		ID:          "minimal-csv",
		Name:        "Minimal CSV",
		Description: "Date, category and amount only, for spreadsheet import",
		Format:      export.FormatCSV,
		Spec:        export.RenderSpec{Columns: export.ColumnsMinimal},
	},
	{
		ID:          "annual-overview",
		Name:        "Annual Overview",
		Description: "Full-year report with summary and transaction table",
		Format:      export.FormatReport,
		Spec:        export.RenderSpec{Title: "Annual Overview"},
	},
}

// Templates returns the export template catalog.
func Templates() []Template {
	out := make([]Template, len(templateCatalog))
	copy(out, templateCatalog)
	return out
}

// TemplateByID looks a template up by its catalog id.
func TemplateByID(id string) (Template, error) {
	for _, t := range templateCatalog {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, ErrUnknownTemplate
}
