package output

// DefaultAssumptions lists modelling assumptions rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Income tax, National Insurance and student loans use the selected tax year for the whole year",
	"National Insurance is Class 1 employee contributions only",
	"Weekly, daily and hourly pay assume 52 weeks, 260 working days and 2,080 hours",
	"Stamp duty uses the rules for England and Northern Ireland unless Scotland (LBTT) is selected",
	"Inflation before the earliest published year of an index is not available; future years assume 2%",
}
