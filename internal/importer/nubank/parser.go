// Package nubank reads Nubank CSV exports, both the account statement
// ("Data,Valor,Identificador,Descrição") and the credit card bill
// ("date,title,amount").
package nubank

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	enc "github.com/MrJamesThe3rd/carteira/internal/encoding"
	"github.com/MrJamesThe3rd/carteira/internal/transaction"
)

type layout struct {
	name       string
	dateCol    string
	descCol    string
	amountCol  string
	dateLayout string
	// chargesPositive is set for card bills, where purchases are positive
	// and payments or refunds negative.
	chargesPositive bool
}

var layouts = []layout{
	{
		name:       "conta",
		dateCol:    "data",
		descCol:    "descrição",
		amountCol:  "valor",
		dateLayout: "02/01/2006",
	},
	{
		name:            "cartão",
		dateCol:         "date",
		descCol:         "title",
		amountCol:       "amount",
		dateLayout:      time.DateOnly,
		chargesPositive: true,
	},
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

func (p *Parser) Parse(r io.Reader) ([]transaction.Params, error) {
	utf8r, _, err := enc.ToUTF8(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("empty file")
	}

	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}

	l, ok := detect(cols)
	if !ok {
		return nil, fmt.Errorf("no matching Nubank format found: header %q", strings.Join(header, ","))
	}

	var txs []transaction.Params

	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}

		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		tx, ok, err := l.parseRow(cols, row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		if ok {
			txs = append(txs, tx)
		}
	}

	return txs, nil
}

func detect(cols map[string]int) (layout, bool) {
	for _, l := range layouts {
		_, hasDate := cols[l.dateCol]
		_, hasDesc := cols[l.descCol]
		_, hasAmount := cols[l.amountCol]

		if hasDate && hasDesc && hasAmount {
			return l, true
		}
	}

	return layout{}, false
}

// parseRow returns ok=false for blank rows and zero amounts.
func (l layout) parseRow(cols map[string]int, row []string) (transaction.Params, bool, error) {
	dateStr := cell(row, cols[l.dateCol])
	amountStr := cell(row, cols[l.amountCol])

	if dateStr == "" && amountStr == "" {
		return transaction.Params{}, false, nil
	}

	date, err := time.Parse(l.dateLayout, dateStr)
	if err != nil {
		return transaction.Params{}, false, fmt.Errorf("invalid date %q", dateStr)
	}

	amount, err := decimal.NewFromString(amountStr)
	if err != nil {
		return transaction.Params{}, false, fmt.Errorf("invalid amount %q", amountStr)
	}

	if amount.IsZero() {
		return transaction.Params{}, false, nil
	}

	if l.chargesPositive {
		amount = amount.Neg()
	}

	kind := transaction.KindIncome
	if amount.IsNegative() {
		kind = transaction.KindExpense
	}

	return transaction.Params{
		Kind:        kind,
		Amount:      amount.Abs(),
		Description: cell(row, cols[l.descCol]),
		Date:        date,
	}, true, nil
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}
