package almanac

import (
	"fmt"
	"strings"
)

// DocumentOptions renders a reStructuredText csv-table describing an
// option set, one row per option, for inclusion in generated
// documentation.
func DocumentOptions(title string, templates []Template) string {
	var b strings.Builder
	fmt.Fprintf(&b, ".. csv-table:: %s\n", title)
	b.WriteString("   :header: \"Option\", \"Default\", \"Description\"\n\n")

	for _, t := range templates {
		fmt.Fprintf(&b, "   `%s`, %v, \"%s\"\n", t.Name, t.Default, doubleQuotes(t.Help))
	}
	return b.String()
}

// doubleQuotes escapes embedded double quotes for csv-table cells:
// `Say "foo"` becomes `Say ""foo""`.
func doubleQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `""`)
}
