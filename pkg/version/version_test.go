package version

import "testing"

func Test_Parse(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Number
		wantErr bool
	}{
		{
			name: "plain",
			in:   "10.1.6",
			want: Number{Major: 10, Minor: 1, Patch: 6},
		},
		{
			name: "hotfix",
			in:   "9.0.3-h2",
			want: Number{Major: 9, Minor: 0, Patch: 3, Hotfix: "h2"},
		},
		{
			name:    "two segments",
			in:      "10.1",
			wantErr: true,
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
		{
			name:    "non numeric",
			in:      "a.b.c",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("Parse() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Parse() = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_Cmp(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "equal", a: "10.1.6", b: "10.1.6", want: 0},
		{name: "hotfix ignored", a: "10.1.6-h1", b: "10.1.6", want: 0},
		{name: "patch", a: "10.1.5", b: "10.1.6", want: -1},
		{name: "minor beats patch", a: "10.2.0", b: "10.1.9", want: 1},
		{name: "major beats minor", a: "11.0.0", b: "10.9.9", want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MustParse(tt.a).Cmp(MustParse(tt.b)); got != tt.want {
				t.Errorf("Cmp() = %v, want %v", got, tt.want)
			}
		})
	}
}
