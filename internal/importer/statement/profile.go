package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountTyped means an unsigned amount next to an income/expense column.
	amountTyped amountMode = iota
	// amountSigned means one signed column, negative for money going out.
	amountSigned
	// amountSplit means separate money-out and money-in columns.
	amountSplit
)

// Profile describes the column layout of a statement export.
type Profile struct {
	Name        string
	DateCol     string
	DateLayouts []string
	DescCol     string
	CategoryCol string
	AmountMode  amountMode
	TypeCol     string // amountTyped
	AmountCol   string // amountTyped, amountSigned
	DebitCol    string // amountSplit
	CreditCol   string // amountSplit
}

func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountTyped:
		cols = append(cols, p.TypeCol, p.AmountCol)
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

// profiles is tried in order during auto-detection, most specific first.
var profiles = []Profile{
	{
		Name:        "savvy",
		DateCol:     "Date",
		DateLayouts: []string{"2006-01-02"},
		DescCol:     "Description",
		CategoryCol: "Category",
		AmountMode:  amountTyped,
		TypeCol:     "Type",
		AmountCol:   "Amount",
	},
	{
		Name:        "mpesa",
		DateCol:     "Completion Time",
		DateLayouts: []string{"2006-01-02 15:04:05", "02/01/2006 15:04:05", "2006-01-02"},
		DescCol:     "Details",
		AmountMode:  amountSplit,
		DebitCol:    "Withdrawn",
		CreditCol:   "Paid In",
	},
	{
		Name:        "bank",
		DateCol:     "Transaction Date",
		DateLayouts: []string{"02/01/2006", "2006-01-02", "02-01-2006", "02 Jan 2006"},
		DescCol:     "Description",
		AmountMode:  amountSplit,
		DebitCol:    "Money Out",
		CreditCol:   "Money In",
	},
	{
		Name:        "signed",
		DateCol:     "Date",
		DateLayouts: []string{"2006-01-02", "02/01/2006"},
		DescCol:     "Description",
		AmountMode:  amountSigned,
		AmountCol:   "Amount",
	},
}

// Names lists the known profile names in detection order.
func Names() []string {
	names := make([]string, len(profiles))
	for i, p := range profiles {
		names[i] = p.Name
	}

	return names
}

func lookup(name string) *Profile {
	for i := range profiles {
		if profiles[i].Name == name {
			return &profiles[i]
		}
	}

	return nil
}
