package importer

import (
	"io"

	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type Bank string

const (
	BankCGD    Bank = "cgd"
	BankNubank Bank = "nubank"
)

// Banks lists the supported export formats.
var Banks = []Bank{BankCGD, BankNubank}

// Importer turns a bank export into uncategorized transaction params.
type Importer interface {
	Parse(r io.Reader) ([]transaction.Params, error)
}
