package cigarbutt

// Default run parameters.
const (
	DefaultOutput = "cigar_butts_found.csv"
	DefaultLimit  = 100
)

// Config holds the run parameters of a scan.
//
// The env tags are read by the command line (see cmd), the zero value is not
// usable, start from DefaultConfig.
type Config struct {
	Input   string `env:"NCAV_INPUT" env-description:"CSV file with a Symbol column"`
	Output  string `env:"NCAV_OUTPUT" env-default:"cigar_butts_found.csv" env-description:"CSV file to write the cigar butts found to"`
	Limit   int    `env:"NCAV_LIMIT" env-default:"100" env-description:"maximum number of tickers to scan, 0 for no limit"`
	Verbose bool   `env:"NCAV_VERBOSE" env-default:"true" env-description:"report every cigar butt found as it is found"`

	// Date is the evaluation date stamped on every result, today if zero.
	// It has no env tag: it is set by the -date flag only.
	Date Date
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Output:  DefaultOutput,
		Limit:   DefaultLimit,
		Verbose: true,
	}
}
