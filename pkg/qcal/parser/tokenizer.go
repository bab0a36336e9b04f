// Package parser extracts the sections of a qCal calibration report into typed tables.
package parser

import "strings"

// The vendor name is the only field in a report that embeds a comma.
const (
	vendorName        = "Hyperfine, Inc."
	vendorNameNoComma = "Hyperfine Inc."
)

// Tokenize splits one report line on commas and strips double quotes from
// every field. It is not a general CSV reader: the only embedded comma it
// handles is the one in the vendor name.
func Tokenize(line string) []string {
	line = strings.ReplaceAll(line, vendorName, vendorNameNoComma)
	line = strings.ReplaceAll(line, "\n", "")
	line = strings.TrimSuffix(line, "\r")

	fields := strings.Split(line, ",")
	for i, f := range fields {
		fields[i] = strings.ReplaceAll(f, `"`, "")
	}
	return fields
}

// SplitQuoted splits a line on the `","` sequence between quoted fields, so
// commas inside a quoted value stay in that value. The outer quotes of the
// first and last field are left in place.
func SplitQuoted(line string) []string {
	line = strings.TrimRight(line, "\r\n")
	return strings.Split(line, `","`)
}

// unquote removes double quotes and surrounding whitespace from a SplitQuoted field.
func unquote(field string) string {
	return strings.TrimSpace(strings.ReplaceAll(field, `"`, ""))
}
