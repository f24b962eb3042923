package orbit

import (
	"fmt"
	"io"
	"math"
	"strings"
)

// SummaryRow is one line of the headless position table.
type SummaryRow struct {
	Name     string
	Kind     string
	X, Y, Z  float64
	Distance float64
	Angle    float64 // orbital phase in degrees, [0, 360)
}

// GenerateSummaryRows builds table rows for every body and satellite at t.
func GenerateSummaryRows(s *System, t float64) []SummaryRow {
	pos := s.Positions(t)
	rows := make([]SummaryRow, 0, len(pos.Bodies)+len(pos.Satellites))

	for i, b := range s.Bodies {
		p := pos.Bodies[i]
		kind := "body"
		if i == 0 {
			kind = "central"
		}
		rows = append(rows, SummaryRow{
			Name: b.Name, Kind: kind,
			X: p.X, Y: p.Y, Z: p.Z,
			Distance: p.Norm(),
			Angle:    phaseDeg(b.AngularSpeed, t),
		})
	}

	for i, b := range s.Bodies {
		for k, j := range s.SatellitesOf(i) {
			p := pos.Satellites[j]
			rows = append(rows, SummaryRow{
				Name: fmt.Sprintf("%s-%c", b.Name, 'a'+rune(k)),
				Kind: "satellite",
				X:    p.X, Y: p.Y, Z: p.Z,
				Distance: p.Norm(),
				Angle:    phaseDeg(s.Satellites[j].AngularSpeed, t),
			})
		}
	}
	return rows
}

func phaseDeg(speed, t float64) float64 {
	deg := math.Mod(speed*t*180/math.Pi, 360)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// WriteSummaryTable writes a human-readable position table to w.
func WriteSummaryTable(w io.Writer, s *System, t float64) {
	rows := GenerateSummaryRows(s, t)

	fmt.Fprintf(w, "Orrery @ t=%.2f\n", t)
	fmt.Fprintln(w, strings.Repeat("─", 72))

	if len(rows) == 0 {
		fmt.Fprintln(w, "No bodies")
		return
	}

	fmt.Fprintf(w, "%-12s %-9s %9s %9s %9s %9s %7s\n",
		"Name", "Kind", "X", "Y", "Z", "Dist", "Phase")
	fmt.Fprintln(w, strings.Repeat("─", 72))

	for _, r := range rows {
		fmt.Fprintf(w, "%-12s %-9s %9.3f %9.3f %9.3f %9.3f %6.1f°\n",
			truncateStr(r.Name, 12), r.Kind, r.X, r.Y, r.Z, r.Distance, r.Angle)
	}

	fmt.Fprintf(w, "\nTotal: %d bodies, %d satellites, %d debris\n",
		len(s.Bodies), len(s.Satellites), len(s.Debris))
}

func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
