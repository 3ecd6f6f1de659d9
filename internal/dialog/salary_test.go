package dialog

import "testing"

func TestNormalizeSalary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "plain number",
			input: "120000",
			want:  "120000",
		},
		{
			name:  "space separated thousands",
			input: "120 000",
			want:  "120000",
		},
		{
			name:  "comma separated thousands",
			input: "120,000",
			want:  "120000",
		},
		{
			name:  "surrounding whitespace",
			input: "  90000 ",
			want:  "90000",
		},
		{
			name:  "non-breaking spaces",
			input: "120 000",
			want:  "120000",
		},
		{
			name:    "letters",
			input:   "abc",
			wantErr: true,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "lone minus",
			input:   "-",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := NormalizeSalary(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected an error, got %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
		})
	}
}
