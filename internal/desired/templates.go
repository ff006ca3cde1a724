package desired

import (
	"fmt"
	"strings"

	"github.com/accord-sync/accord/internal/permission"
	"github.com/accord-sync/accord/internal/tabular"
)

// nameRowLabel marks the row of a template sheet that declares the template
// name.
const nameRowLabel = "Name"

// LoadTemplates reads one role template per worksheet of wb. Each sheet is a
// sequence of rows in the first two columns: the name declaration, category
// headers (first cell only), and permission assignments (label plus a yes/no
// value) that apply to the most recent category header. Any other row shape
// is an error. The declared name must match the sheet name and be unique
// across the workbook.
func LoadTemplates(wb tabular.Workbook) (map[string]*permission.Template, error) {
	templates := make(map[string]*permission.Template)
	for _, sheetName := range wb.SheetNames() {
		sheet, err := wb.Sheet(sheetName)
		if err != nil {
			return nil, err
		}
		tpl, err := parseTemplate(sheet)
		if err != nil {
			return nil, err
		}
		if tpl.Name != sheetName {
			return nil, &TemplateError{
				Sheet:  sheetName,
				Reason: fmt.Sprintf("sheet name does not match role template name '%s' specified", tpl.Name),
			}
		}
		if _, exists := templates[tpl.Name]; exists {
			return nil, &TemplateError{
				Sheet:  sheetName,
				Reason: fmt.Sprintf("role template with name '%s' already defined", tpl.Name),
			}
		}
		templates[tpl.Name] = tpl
	}
	return templates, nil
}

func parseTemplate(sheet tabular.Sheet) (*permission.Template, error) {
	tpl := permission.NewTemplate("")
	category := ""

	rows := append([][]tabular.Cell{sheet.Header()}, sheet.Rows()...)
	for _, row := range rows {
		first := tabular.At(row, 0)
		second := tabular.At(row, 1)

		switch {
		case strings.TrimSpace(first.Text()) == nameRowLabel:
			if second.IsEmpty() {
				return nil, &TemplateError{
					Sheet:  sheet.Name(),
					Reason: "invalid 'Name' specification, value must be provided",
				}
			}
			tpl.Name = strings.TrimSpace(second.Text())

		case !first.IsEmpty() && second.IsEmpty():
			category = strings.TrimSpace(first.Text())
			if !permission.IsCategory(category) {
				return nil, &TemplateError{
					Sheet:  sheet.Name(),
					Reason: fmt.Sprintf("invalid permission category '%s'", category),
				}
			}

		case !first.IsEmpty() && !second.IsEmpty():
			label := strings.TrimSpace(first.Text())
			value := strings.EqualFold(strings.TrimSpace(second.Text()), "yes")
			if category == "" {
				return nil, &TemplateError{
					Sheet: sheet.Name(),
					Reason: fmt.Sprintf("invalid attempt to specify permission '%s' (value '%s') outside of a category",
						label, second.Text()),
				}
			}
			if !tpl.Set(category, label, value) {
				return nil, &TemplateError{
					Sheet: sheet.Name(),
					Reason: fmt.Sprintf("invalid permission '%s' (value '%s') in category '%s'",
						label, second.Text(), category),
				}
			}

		case !second.IsEmpty():
			return nil, &TemplateError{
				Sheet:  sheet.Name(),
				Reason: fmt.Sprintf("invalid row contents ('%s', '%s')", first.Text(), second.Text()),
			}
		}
		// Both cells empty: blank spacer row, skip.
	}

	if tpl.Name == "" {
		return nil, &TemplateError{Sheet: sheet.Name(), Reason: "role template name must be specified"}
	}
	return tpl, nil
}
