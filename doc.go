// Package cigarbutt screens equities with Benjamin Graham's net current asset
// value test: a stock is a "cigar butt" when its market price is below its net
// current asset value per share.
//
// The test itself is:
//
//	NCAV               = Current Assets - Total Liabilities
//	Shares Outstanding = Market Cap / Price
//	NCAV per Share     = NCAV / Shares Outstanding
//	cigar butt         : Price < NCAV per Share
//
// The core functionalities include:
//   - Evaluation: [Evaluate] fetches the figures of a ticker from a [Provider]
//     and runs the test. Missing figures are not an error, the ticker is
//     simply not evaluated.
//   - Scanning: a [Scanner] runs the evaluation over a list of tickers, one
//     at a time, tolerates provider failures, and writes the cigar butts found
//     as a CSV file.
//
// The market data provider lives in the eodhd package, the console report in
// the renderer package and the command line in the cmd package.
package cigarbutt
