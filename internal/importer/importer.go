package importer

import (
	"io"

	"github.com/MrJamesThe3rd/savvy/internal/transaction"
)

// Source names the statement layout of an upload. SourceAuto detects it from
// the header row.
type Source string

const (
	SourceAuto   Source = ""
	SourceSavvy  Source = "savvy"
	SourceMpesa  Source = "mpesa"
	SourceBank   Source = "bank"
	SourceSigned Source = "signed"
)

// Parser reads a statement into unsaved transaction params.
type Parser interface {
	Parse(r io.Reader, profile string) ([]transaction.CreateParams, error)
}
