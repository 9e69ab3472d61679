package types

// Facility describes one care facility known to the report.
type Facility struct {
	Code      string
	SheetName string
}

// Facilities is the fixed code -> sheet name table used when embedding charts.
var Facilities = []Facility{
	{Code: "yn", SheetName: "영남(경산)"},
	{Code: "jj", SheetName: "전남제일(화순)"},
	{Code: "h", SheetName: "효사랑(영천)"},
	{Code: "gj", SheetName: "구미제일(구미)"},
}

// SheetNameFor resolves a facility code to its sheet name. Unknown codes are used verbatim.
func SheetNameFor(code string) string {
	for _, f := range Facilities {
		if f.Code == code {
			return f.SheetName
		}
	}
	return code
}
