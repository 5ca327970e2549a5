package svgfilter

import "testing"

func TestParseSVGColor(t *testing.T) {
	tests := []struct {
		input string
		want  Color
	}{
		{"#fff", Color{255, 255, 255, 255}},
		{"#F00", Color{255, 0, 0, 255}},
		{"#00ff00", Color{0, 255, 0, 255}},
		{"#1a2B3c", Color{0x1a, 0x2b, 0x3c, 255}},
		{"rgb(1, 2, 3)", Color{1, 2, 3, 255}},
		{"rgb(100%, 0%, 50%)", Color{255, 0, 128, 255}},
		{"rgb(300, -4, 12)", Color{255, 0, 12, 255}},
		{"rgba(10, 20, 30, 0.5)", Color{10, 20, 30, 128}},
		{"red", Color{255, 0, 0, 255}},
		{"Black", Color{0, 0, 0, 255}},
		{" navy ", Color{0, 0, 128, 255}},
		{"teal", Color{0, 128, 128, 255}},
		{"none", Color{}},
		{"transparent", Color{}},
		{"Transparent", Color{}},
	}
	for _, test := range tests {
		got, err := parseSVGColor(test.input)
		if err != nil {
			t.Errorf("parseSVGColor(%q): %s", test.input, err)
			continue
		}
		if got != test.want {
			t.Errorf("parseSVGColor(%q): got %+v, want %+v", test.input, got, test.want)
		}
	}
}

func TestParseSVGColorErrors(t *testing.T) {
	for _, input := range []string{
		"", "#ff", "#fffff", "#ggg", "rgb(1,2)", "rgb(a,b,c)", "hsl(0, 0%, 0%)", "notacolor",
	} {
		if _, err := parseSVGColor(input); err == nil {
			t.Errorf("parseSVGColor(%q) should fail", input)
		}
	}
}

func TestColorComponents(t *testing.T) {
	c := Color{51, 102, 255, 255}
	if c.RedF() != 0.2 || c.GreenF() != 0.4 || c.BlueF() != 1 {
		t.Errorf("float components: %g %g %g", c.RedF(), c.GreenF(), c.BlueF())
	}
}
