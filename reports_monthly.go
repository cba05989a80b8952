package tradelens

import (
	"math"
	"sort"
)

// DefaultAssumedTradingDays is the trading-day count assumed for a month with
// no trade data at all.
const DefaultAssumedTradingDays = 20

// MonthlyBucket is the calendar-month summary of daily and trade data. It is
// rebuilt from scratch on every run; buckets are never mutated incrementally.
type MonthlyBucket struct {
	// Key is the zero-padded "YYYY-MM" month key. Lexicographic order on
	// keys is chronological, including across year boundaries.
	Key string
	// Return is the month's return as a fraction, sourced from the upstream
	// valuation series, never re-derived here.
	Return float64
	// TradingDays is the count of distinct dates with at least one trade,
	// or the assumed default when the month has no trade data.
	TradingDays int
	// AssumedTradingDays is true when TradingDays is the configured default
	// rather than an observed count.
	AssumedTradingDays bool
	// TradeCount is the number of sell outcomes dated within the month.
	// Buys count toward TradingDays but not toward TradeCount.
	TradeCount int
	// WinRate is the fraction of those sells with positive realized P&L,
	// 0 when TradeCount is 0.
	WinRate float64
	// EstimatedMaxDrawdown and EstimatedVolatility are heuristic proxies
	// derived from the magnitude of Return. They stand in when no intraday
	// series exists for the month and must never be confused with the
	// precise figures Drawdowns computes on genuine daily data.
	EstimatedMaxDrawdown float64
	EstimatedVolatility  float64
}

// MonthlyOptions configures monthly aggregation.
type MonthlyOptions struct {
	// AssumedTradingDays replaces the trading-day count of a month without
	// trades. Zero means DefaultAssumedTradingDays.
	AssumedTradingDays int
}

// AggregateMonthly buckets trade activity and monthly returns into calendar
// months. tradeDates carries the date of every executed trade, buys included;
// distinct dates drive TradingDays, while TradeCount and WinRate only look at
// the sell outcomes. Bucket keys are the union of the months present in any
// input, sorted chronologically (lexicographically on the zero-padded key).
func AggregateMonthly(tradeDates []Date, outcomes []RealizedTradeOutcome, monthlyReturns map[string]float64, opts MonthlyOptions) []MonthlyBucket {
	assumedDays := opts.AssumedTradingDays
	if assumedDays == 0 {
		assumedDays = DefaultAssumedTradingDays
	}

	daysByMonth := make(map[string]map[Date]struct{})
	markDay := func(on Date) {
		key := on.MonthKey()
		days := daysByMonth[key]
		if days == nil {
			days = make(map[Date]struct{})
			daysByMonth[key] = days
		}
		days[on] = struct{}{}
	}
	for _, on := range tradeDates {
		markDay(on)
	}

	type monthSells struct {
		wins  int
		count int
	}
	sellsByMonth := make(map[string]*monthSells)
	for _, o := range outcomes {
		// an outcome's date is a trading date even when the caller only
		// passed outcomes
		markDay(o.Date)
		key := o.Date.MonthKey()
		ms := sellsByMonth[key]
		if ms == nil {
			ms = &monthSells{}
			sellsByMonth[key] = ms
		}
		ms.count++
		if o.Win() {
			ms.wins++
		}
	}

	keySet := make(map[string]struct{}, len(daysByMonth)+len(monthlyReturns))
	for key := range daysByMonth {
		keySet[key] = struct{}{}
	}
	for key := range monthlyReturns {
		keySet[key] = struct{}{}
	}
	keys := make([]string, 0, len(keySet))
	for key := range keySet {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	buckets := make([]MonthlyBucket, 0, len(keys))
	for _, key := range keys {
		bucket := MonthlyBucket{Key: key, Return: monthlyReturns[key]}

		if days := daysByMonth[key]; len(days) > 0 {
			bucket.TradingDays = len(days)
		} else {
			bucket.TradingDays = assumedDays
			bucket.AssumedTradingDays = true
		}
		if ms := sellsByMonth[key]; ms != nil {
			bucket.TradeCount = ms.count
			bucket.WinRate = float64(ms.wins) / float64(ms.count)
		}

		bucket.EstimatedMaxDrawdown = estimateMonthlyDrawdown(bucket.Return)
		bucket.EstimatedVolatility = estimateMonthlyVolatility(bucket.Return)
		buckets = append(buckets, bucket)
	}
	return buckets
}

// estimateMonthlyDrawdown proxies a month's intra-month drawdown as half the
// magnitude of its return, negative. A flat month estimates zero drawdown.
func estimateMonthlyDrawdown(monthReturn float64) float64 {
	return -math.Abs(monthReturn) / 2
}

// estimateMonthlyVolatility proxies a month's volatility as the magnitude of
// its return: a month that moved 5% is assumed to have wiggled about as much.
func estimateMonthlyVolatility(monthReturn float64) float64 {
	return math.Abs(monthReturn)
}
