package gallery

import "testing"

func TestCleanedMetadata(t *testing.T) {
	no := false
	p := &Picture{
		ID:      1,
		Width:   4000,
		Height:  3000,
		Shutter: "0.0063 s (1/160)",
		Focal:   "24.0mm (35mm equivalent 1150mm)",
		Flash:   &no,
		TS:      "2019-03-01 10:00:00",
		TZ:      "PST",
		Lat:     37.77493,
		Lon:     -122.41942,
		Alt:     16,
		Camera:  "Nikon F3",
	}
	md := CleanedMetadata(p)

	want := map[string]string{
		"sht": "1/160",
		"foc": "24.0mm",
		"fls": "no",
		"tsz": "2019-03-01 10:00:00 PST",
		"gps": "(37.7749 N, 122.4194 W) Altitude 16m",
		"siz": "12MP 4000x3000",
		"cam": "Nikon F3",
	}
	for k, v := range want {
		if md[k] != v {
			t.Errorf("md[%q] = %q, want %q", k, md[k], v)
		}
	}
	if _, ok := md["wmk"]; ok {
		t.Error("empty fields should be left out")
	}
}

func TestCleanedMetadataNoGPS(t *testing.T) {
	md := CleanedMetadata(&Picture{Width: 1920, Height: 1080})
	if _, ok := md["gps"]; ok {
		t.Errorf("gps = %q, want absent", md["gps"])
	}
	if md["siz"] != "2.1MP 1920x1080" {
		t.Errorf("siz = %q", md["siz"])
	}
	if _, ok := md["fls"]; ok {
		t.Error("fls should be absent when the server sent null")
	}
}

func TestMetadataFieldsOrder(t *testing.T) {
	if MetadataFields[0].Key != "cam" || MetadataFields[len(MetadataFields)-1].Key != "gps" {
		t.Errorf("MetadataFields order changed: %v", MetadataFields)
	}
}
