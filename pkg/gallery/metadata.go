package gallery

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// MetadataField is one row of the metadata table: the cleaned key and the
// label shown next to it.
type MetadataField struct {
	Key   string
	Label string
}

// MetadataFields lists the metadata rows in display order.
var MetadataFields = []MetadataField{
	{"cam", "camera"}, {"fil", "origfile"},
	{"apt", "aperture"}, {"sht", "shutter"},
	{"flm", "film"}, {"pcs", "process"},
	{"exp", "exposure"}, {"met", "metering"},
	{"foc", "focallen"}, {"fls", "flash"},
	{"tsz", "timestamp"}, {"siz", "size"},
	{"gps", "gps"},
}

var (
	// "0.0063 s (1/160)" -> "1/160"
	shutterRe = regexp.MustCompile(`.*\(([0-9/]+)\)`)
	// "24.0mm (35mm equivalent 1150mm)" -> "24.0mm"
	focalRe = regexp.MustCompile(`^([0-9.m]+).*`)
)

// CleanedMetadata flattens a picture into display strings keyed like the
// wire format, plus the synthetic keys tsz, gps and siz. Empty values are
// left out.
func CleanedMetadata(p *Picture) map[string]string {
	md := make(map[string]string)
	for _, k := range []string{"apt", "cam", "cap", "dat", "exp", "fil", "flm", "met", "pcs", "tit", "ts", "tz", "wmk"} {
		if v := p.Field(k); v != "" {
			md[k] = v
		}
	}
	if p.Shutter != "" {
		md["sht"] = shutterRe.ReplaceAllString(string(p.Shutter), "$1")
	}
	if p.Focal != "" {
		md["foc"] = focalRe.ReplaceAllString(string(p.Focal), "$1")
	}
	if p.Flash != nil {
		if *p.Flash {
			md["fls"] = "yes"
		} else {
			md["fls"] = "no"
		}
	}
	md["tsz"] = fmt.Sprintf("%s %s", p.TS, p.TZ)
	if p.Lat != 0 || p.Lon != 0 || p.Alt != 0 {
		ns, ew := "N", "E"
		if p.Lat < 0 {
			ns = "S"
		}
		if p.Lon < 0 {
			ew = "W"
		}
		md["gps"] = fmt.Sprintf("(%s %s, %s %s) Altitude %sm",
			formatNumber(round4(math.Abs(p.Lat))), ns,
			formatNumber(round4(math.Abs(p.Lon))), ew,
			formatNumber(p.Alt))
	}
	mp := math.Round(float64(p.Width)*float64(p.Height)/100000) / 10
	md["siz"] = fmt.Sprintf("%sMP %dx%d", formatNumber(mp), p.Width, p.Height)
	return md
}

func round4(f float64) float64 { return math.Round(f*10000) / 10000 }

// formatNumber prints the shortest decimal that round-trips, so 12.0 is
// "12" and 0.5 is "0.5".
func formatNumber(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }
