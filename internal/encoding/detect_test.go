package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/savvy/internal/encoding"
)

func TestNewUTF8Reader(t *testing.T) {
	utf16le := []byte{0xFF, 0xFE}
	for _, r := range "Café,12.50\n" {
		utf16le = append(utf16le, byte(r), 0)
	}

	tests := []struct {
		name  string
		input []byte
		want  string
	}{
		{
			name:  "UTF8Passthrough",
			input: []byte("Description,Amount\nCafé Deli Nairobi,1250.00\nCrème brûlée,300\n"),
			want:  "Description,Amount\nCafé Deli Nairobi,1250.00\nCrème brûlée,300\n",
		},
		{
			name: "Windows1252",
			// "Café,12.50\n" with é as 0xE9.
			input: []byte{'C', 'a', 'f', 0xE9, ',', '1', '2', '.', '5', '0', '\n'},
			want:  "Café,12.50\n",
		},
		{
			name:  "UTF8BOMStripped",
			input: append([]byte{0xEF, 0xBB, 0xBF}, []byte("Date,Amount\n")...),
			want:  "Date,Amount\n",
		},
		{
			name:  "UTF16LE",
			input: utf16le,
			want:  "Café,12.50\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := encoding.NewUTF8Reader(bytes.NewReader(tt.input))
			require.NoError(t, err)

			got, err := io.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestDetectDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{"Comma", "Date,Type,Category,Description,Amount\n2025-01-01,expense,Food,Lunch,10\n", ','},
		{"Semicolon", "Data mov.;Descrição;Montante\n", ';'},
		{"Tab", "Completion Time\tDetails\tPaid In\tWithdrawn\n", '\t'},
		{"QuotedCommas", "\"a,b,c\";\"d,e\";f\n", ';'},
		{"LeadingBlankLines", "\n\n  \nDate|Details|Amount\n", '|'},
		{"Empty", "", ','},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, encoding.DetectDelimiter([]byte(tt.input)))
		})
	}
}
