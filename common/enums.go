// Package common keeps enums shared by configuration and conversion code.
package common

// Specification of requested output type.
// ENUM(html, events)
type OutputFmt int

func (o OutputFmt) Ext() string {
	switch o {
	case OutputFmtHtml:
		return ".html"
	case OutputFmtEvents:
		return ".jsonl"
	default:
		// this should never happen
		panic("unsupported format requested")
	}
}
