package fonts

import "testing"

func TestParseFamily(t *testing.T) {
	tests := []struct {
		in   string
		want Family
	}{
		{"Courier", Mono},
		{" monospace ", Mono},
		{"Arial", Sans},
		{"Times", Sans},
		{"", Sans},
	}
	for _, tt := range tests {
		if got := ParseFamily(tt.in); got != tt.want {
			t.Errorf("ParseFamily(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFaceCached(t *testing.T) {
	for _, f := range []Family{Sans, Mono} {
		for _, bold := range []bool{false, true} {
			for _, italic := range []bool{false, true} {
				if len(TTF(f, bold, italic)) == 0 {
					t.Fatalf("no font data for %v bold=%v italic=%v", f, bold, italic)
				}
				a, err := Source(f, bold, italic)
				if err != nil {
					t.Fatal(err)
				}
				b, _ := Source(f, bold, italic)
				if a != b {
					t.Error("font source not cached")
				}
			}
		}
	}
	face, err := Face(Mono, true, true, 16)
	if err != nil || face == nil {
		t.Fatalf("Face() = %v, %v", face, err)
	}
	if face.Size() != 16 {
		t.Errorf("face size = %v, want 16", face.Size())
	}
}

func TestBase64(t *testing.T) {
	if Base64(Sans, false, false) == "" || Base64(Sans, false, false) != Base64(Sans, false, false) {
		t.Error("Base64 should be non-empty and stable")
	}
}
