package system

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/san-kum/trojansim/internal/body"
	"github.com/san-kum/trojansim/internal/vec"
)

// FormatBody serializes a body to one line of the initial-condition format.
// The output round-trips through ParseLine.
func FormatBody(b *body.Body) string {
	var sb strings.Builder
	sb.WriteString(b.Kind.String())

	trojan := "False"
	if b.Trojan {
		trojan = "True"
	}
	fmt.Fprintf(&sb, " trojan=%s", trojan)
	if b.Name != "" {
		fmt.Fprintf(&sb, " name=%s", b.Name)
	}
	fmt.Fprintf(&sb, " mass=%s", formatFloat(b.Mass))
	fmt.Fprintf(&sb, " radius=%s", formatFloat(b.Radius))
	fmt.Fprintf(&sb, " position=%s", formatVec(b.Position))
	fmt.Fprintf(&sb, " velocity=%s", formatVec(b.Velocity))
	return sb.String()
}

// Format serializes a whole system, one body per line.
func Format(sys *System) string {
	lines := make([]string, 0, len(sys.Bodies))
	for _, b := range sys.Bodies {
		lines = append(lines, FormatBody(b))
	}
	return strings.Join(lines, "\n") + "\n"
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func formatVec(v vec.Vec3) string {
	return formatFloat(v.X) + "," + formatFloat(v.Y) + "," + formatFloat(v.Z)
}
