package erbast

// VoidElements is the set of HTML elements that never take a closing tag.
// Adapted from the teacher's HtmlTagDefinition void-element table
// (packages/compiler/src/ml_parser/html_tags.go), trimmed to the elements
// relevant to indentation checking.
var VoidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoid reports whether name is a void element.
func IsVoid(name string) bool {
	return VoidElements[name]
}
