package output

import (
	"github.com/leadscout/leadscout/internal/leads"
	"github.com/leadscout/leadscout/internal/message"
)

// baseColumns is the fixed export column order.
var baseColumns = []string{
	"Property Name",
	"Address",
	"Management Company",
	"Phone",
	"Email",
	"Source URL",
	"Mgmt URL",
	"Source",
}

// messageColumns extend the export with generated outreach text.
var messageColumns = []string{
	"Call Script",
	"Email Subject",
	"Email Body",
}

// Columns returns the header row.
func Columns(withMessages bool) []string {
	if !withMessages {
		return baseColumns
	}
	out := make([]string, 0, len(baseColumns)+len(messageColumns))
	out = append(out, baseColumns...)
	return append(out, messageColumns...)
}

// Value returns the record's cell for the named base column. The bool
// reports whether the column exists; message columns are generated, not
// stored, so they have no value here.
func Value(r leads.Record, column string) (string, bool) {
	switch column {
	case "Property Name":
		return r.Name, true
	case "Address":
		return r.Address, true
	case "Management Company":
		return r.Management, true
	case "Phone":
		return r.Phone, true
	case "Email":
		return r.Email, true
	case "Source URL":
		return r.SourceURL, true
	case "Mgmt URL":
		return r.MgmtURL, true
	case "Source":
		return r.Source, true
	}
	return "", false
}

// setColumn writes a cell into the record field behind the named base
// column, reporting whether the column was recognized.
func setColumn(r *leads.Record, column, value string) bool {
	switch column {
	case "Property Name":
		r.Name = value
	case "Address":
		r.Address = value
	case "Management Company":
		r.Management = value
	case "Phone":
		r.Phone = value
	case "Email":
		r.Email = value
	case "Source URL":
		r.SourceURL = value
	case "Mgmt URL":
		r.MgmtURL = value
	case "Source":
		r.Source = value
	default:
		return false
	}
	return true
}

// Row converts a record to a cell slice in column order.
func Row(r leads.Record, withMessages bool) []string {
	row := []string{
		r.Name,
		r.Address,
		r.Management,
		r.Phone,
		r.Email,
		r.SourceURL,
		r.MgmtURL,
		r.Source,
	}
	if withMessages {
		subject, body := message.Outreach(r.Name, r.Address, r.Management)
		row = append(row, message.CallScript(r.Name, r.Address, r.Management), subject, body)
	}
	return row
}
