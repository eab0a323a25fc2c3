package tabular

import (
	"errors"
	"testing"
)

func TestForPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr error
	}{
		{path: "encuesta.csv", want: "csv"},
		{path: "/data/ENCUESTA.CSV", want: "csv"},
		{path: "export.txt", want: "csv"},
		{path: "encuesta.xlsx", want: "xlsx"},
		{path: "macro.xlsm", want: "xlsx"},
		{path: "encuesta.ods", wantErr: ErrUnsupportedFormat},
		{path: "encuesta", wantErr: ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			f, err := ForPath(tt.path)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ForPath(%q) error = %v, want %v", tt.path, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ForPath(%q) error = %v", tt.path, err)
			}
			if f.Name != tt.want {
				t.Errorf("ForPath(%q) = %q, want %q", tt.path, f.Name, tt.want)
			}
		})
	}
}

func TestGet(t *testing.T) {
	if f, ok := Get("CSV"); !ok || f.Name != "csv" {
		t.Errorf("Get(CSV) = %q, %v", f.Name, ok)
	}
	if _, ok := Get("parquet"); ok {
		t.Error("Get(parquet) should not be registered")
	}
}

func TestFormatNames(t *testing.T) {
	names := FormatNames()
	if len(names) != 2 || names[0] != "csv" || names[1] != "xlsx" {
		t.Errorf("FormatNames() = %q, want [csv xlsx]", names)
	}
}

func TestRegister_DuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register() should panic on duplicate name")
		}
	}()
	Register(Format{Name: "csv"})
}
