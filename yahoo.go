package tracker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
)

/*
	{
	    "chart": {
	        "result": [
	            {
	                "meta": {
	                    "currency": "USD",
	                    "symbol": "AAPL",
	                    "regularMarketPrice": 227.52,
	                    ...
	                }
	            }
	        ],
	        "error": null
	    }
	}
*/

// Yahoo fetches current prices from the Yahoo Finance chart endpoint.
// No API key is required.
type Yahoo struct {
	client *http.Client
}

// NewYahoo returns a quote provider backed by Yahoo Finance.
func NewYahoo() *Yahoo {
	return &Yahoo{client: new(http.Client)}
}

// FetchPrice implements QuoteProvider.
func (y *Yahoo) FetchPrice(ctx context.Context, ticker string) (Money, error) {
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?range=1d&interval=1d", url.PathEscape(ticker))

	var jobj any
	if err := jwget(ctx, y.client, addr, &jobj); err != nil {
		if errors.Is(err, errNotFound) {
			// yahoo answers 404 for symbols it does not know
			return Money{}, permanentErr(ticker, err)
		}
		return Money{}, transientErr(ticker, err)
	}

	price, err := jget(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		// a well-formed answer without a price means the symbol is not quoted
		return Money{}, permanentErr(ticker, err)
	}

	currency := "USD"
	if jval, err := jsonpath.Get("$.chart.result[0].meta.currency", jobj); err == nil {
		if s, ok := jval.(string); ok && s != "" {
			currency = s
		}
	}
	return M(price, currency), nil
}

// jget extracts a single float from a parsed JSON document.
func jget(jobj any, path string) (float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return 0, fmt.Errorf("error parsing quote response: %q %w", path, err)
	}
	// because jsonpath is never clear about whether it returns a list of 1
	// answer, or a single answer: by this call I keep the first one if any
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing quote response: %q not a number: %v", path, jval)
	}
	return val, nil
}
