package clean

import "testing"

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"no quotes", "a,b,c", "a,b,c"},
		{"comma in double quotes", `a,"x,y",b`, `a,"xy",b`},
		{"comma in single quotes", "a,'x,y',b", "a,'xy',b"},
		{"multiple commas in span", `"1,234,567"`, `"1234567"`},
		{"other quote kind passes through", `"it's x,y"`, `"it's xy"`},
		{"single quoting ignores double", `'he said "a,b"'`, `'he said "ab"'`},
		{"unclosed quote drops rest", `"a,b,c`, `"abc`},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		`a,"x,y",b`,
		"plain,row,here",
		`'a,b'","c,d"`,
		"name,value\n\"x,1\",2\n",
	}
	for _, in := range inputs {
		once := Sanitize(in)
		if twice := Sanitize(once); twice != once {
			t.Errorf("Sanitize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestSanitize_NeverGrows(t *testing.T) {
	inputs := []string{`a,"b,c"`, "x", "", `"""`, "',',"}
	for _, in := range inputs {
		if got := Sanitize(in); len(got) > len(in) {
			t.Errorf("Sanitize(%q) grew output: %q", in, got)
		}
	}
}
