package version

import "testing"

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Version
	}{
		{
			name:  "simple version",
			input: "1.2.3",
			want:  Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:  "version with v prefix",
			input: "v1.2.3",
			want:  Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:  "two components",
			input: "1.2",
			want:  Version{Major: 1, Minor: 2, Patch: 0},
		},
		{
			name:  "prerelease suffix ignored",
			input: "1.2.3-beta.1",
			want:  Version{Major: 1, Minor: 2, Patch: 3},
		},
		{
			name:  "build suffix ignored",
			input: "0.9.0+abc123",
			want:  Version{Major: 0, Minor: 9, Patch: 0},
		},
		{
			name:  "garbage",
			input: "garbage",
			want:  Version{Major: -1, Minor: -1, Patch: -1, NonStandard: true},
		},
		{
			name:  "empty string",
			input: "",
			want:  Version{Major: -1, Minor: -1, Patch: -1, NonStandard: true},
		},
		{
			name:  "single component",
			input: "7",
			want:  Version{Major: -1, Minor: -1, Patch: -1, NonStandard: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got.Major != tt.want.Major || got.Minor != tt.want.Minor ||
				got.Patch != tt.want.Patch || got.NonStandard != tt.want.NonStandard {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseEquivalences(t *testing.T) {
	if Parse("v1.2.3").Compare(Parse("1.2.3")) != 0 {
		t.Error("v1.2.3 should equal 1.2.3")
	}
	if Parse("1.2").Compare(Parse("1.2.0")) != 0 {
		t.Error("1.2 should equal 1.2.0")
	}
	if Parse("garbage").Compare(Parse("0.0.0")) != -1 {
		t.Error("garbage should sort strictly below 0.0.0")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want int
	}{
		{name: "equal versions", a: "1.2.3", b: "1.2.3", want: 0},
		{name: "equal with v prefix", a: "v0.8.2", b: "0.8.2", want: 0},
		{name: "prerelease equals stable", a: "1.2.3-beta.1", b: "1.2.3", want: 0},

		{name: "major greater", a: "2.0.0", b: "1.9.9", want: 1},
		{name: "major less", a: "1.0.0", b: "2.0.0", want: -1},
		{name: "minor greater", a: "1.9.0", b: "1.8.5", want: 1},
		{name: "minor less", a: "1.8.0", b: "1.9.0", want: -1},
		{name: "patch greater", a: "1.0.3", b: "1.0.2", want: 1},
		{name: "patch less", a: "1.0.1", b: "1.0.2", want: -1},

		{name: "non-standard below zero", a: "garbage", b: "0.0.0", want: -1},
		{name: "real release above non-standard", a: "0.0.1", b: "not-a-version", want: 1},
		{name: "two non-standard equal", a: "foo", b: "bar", want: 0},

		{name: "0.10.0 > 0.9.0", a: "0.10.0", b: "0.9.0", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

// Compare must be antisymmetric and reflexive over valid version strings.
func TestCompareAntisymmetry(t *testing.T) {
	versions := []string{"0.0.0", "1.0.0", "1.2.0", "1.2.3", "2.0.0", "v3.1.4", "1.2", "10.0.0"}

	for _, a := range versions {
		for _, b := range versions {
			ab := Compare(a, b)
			ba := Compare(b, a)
			if ab != -ba {
				t.Errorf("Compare(%s, %s) = %d but Compare(%s, %s) = %d", a, b, ab, b, a, ba)
			}
		}
		if Compare(a, a) != 0 {
			t.Errorf("Compare(%s, %s) != 0", a, a)
		}
	}
}

func TestVersionString(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "normalizes v prefix", input: "v1.2.3", want: "1.2.3"},
		{name: "pads missing patch", input: "1.2", want: "1.2.0"},
		{name: "non-standard keeps raw tag", input: "nightly", want: "nightly"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Parse(tt.input).String(); got != tt.want {
				t.Errorf("Parse(%q).String() = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestIsGreaterThan(t *testing.T) {
	if !Parse("1.2.0").IsGreaterThan(Parse("1.0.0")) {
		t.Error("1.2.0 should be greater than 1.0.0")
	}
	if Parse("1.0.0").IsGreaterThan(Parse("1.2.0")) {
		t.Error("1.0.0 should not be greater than 1.2.0")
	}
}

func TestIsLessThan(t *testing.T) {
	if !Parse("1.9.0").IsLessThan(Parse("2.0.0")) {
		t.Error("1.9.0 should be less than 2.0.0")
	}
	if Parse("2.0.0").IsLessThan(Parse("1.9.0")) {
		t.Error("2.0.0 should not be less than 1.9.0")
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("v1.2.3"); got != "1.2.3" {
		t.Errorf("Normalize(v1.2.3) = %s, want 1.2.3", got)
	}
	if got := Normalize("1.2.3"); got != "1.2.3" {
		t.Errorf("Normalize(1.2.3) = %s, want 1.2.3", got)
	}
}
