// Package message generates outreach text for a lead: a call script
// and an email subject/body pair. Pure formatting, no I/O or state;
// used only to populate the optional message columns of the export.
package message

import (
	"fmt"
	"strings"
)

// CallScript returns a short phone script addressed to the property's
// management contact.
func CallScript(name, address, mgmt string) string {
	property := propertyLabel(name, address)
	team := managementLabel(mgmt)

	var b strings.Builder
	fmt.Fprintf(&b, "Hi, I'm trying to reach %s regarding %s.", team, property)
	if address != "" {
		fmt.Fprintf(&b, " I understand the community is located at %s.", address)
	}
	b.WriteString(" We work with multifamily operators in the area and I'd love to" +
		" set up a quick call with whoever handles vendor partnerships." +
		" What's the best way to get on their calendar?")
	return b.String()
}

// Outreach returns the subject and body of an introduction email.
func Outreach(name, address, mgmt string) (subject, body string) {
	property := propertyLabel(name, address)
	team := managementLabel(mgmt)

	subject = fmt.Sprintf("Partnership inquiry — %s", property)

	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", team)
	fmt.Fprintf(&b, "I came across %s", property)
	if address != "" {
		fmt.Fprintf(&b, " at %s", address)
	}
	b.WriteString(" and wanted to introduce ourselves. We partner with multifamily" +
		" management companies on resident services and would welcome a short call" +
		" to see if there's a fit for your portfolio.\n\n" +
		"Would next week work for a 15-minute introduction?\n\n" +
		"Best regards")
	return subject, b.String()
}

func propertyLabel(name, address string) string {
	if name != "" {
		return name
	}
	if address != "" {
		return "the property at " + address
	}
	return "your property"
}

func managementLabel(mgmt string) string {
	if mgmt != "" {
		return "the team at " + mgmt
	}
	return "the management team"
}
