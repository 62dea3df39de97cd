package deck

import (
	"strconv"
	"strings"
)

// ExportDeckText renders d as a plain listing, heroes first, both sections in id order.
func ExportDeckText(d Deck) string {
	d = d.Sorted()
	lines := []string{}
	if d.Name != "" {
		lines = append(lines, "# "+d.Name)
	}
	for _, h := range d.Heroes {
		lines = append(lines, "hero "+strconv.Itoa(h.ID)+" turn "+strconv.Itoa(h.Turn))
	}
	for _, c := range d.Cards {
		lines = append(lines, strconv.Itoa(c.Count)+"x "+strconv.Itoa(c.ID))
	}
	return strings.Join(lines, "\n")
}
