// Package snippet parses snippet templates and expands them into document
// text plus a list of placeholders.
//
// A template is literal text interleaved with markers:
//
//	${title}                        free text (also ${date}, ${number} macros)
//	${0^title}                      free text
//	${1^title=a^Alpha|b^Beta}       single choice
//	${2^title^and=l^left|r^right}   multi select, joined with "and"
//	${2^title^bilateral=...}        multi select, laterality combined
//	${3^title=aa^Alpha|bb^Beta}     replacement (multi-character keys)
//
// Malformed markers never abort parsing: they are copied through as literal
// text and reported in Template.Problems.
package snippet
