package core

// price.go implements the winston/AR unit conversions from spec §6.

import (
	"fmt"
	"strings"
)

// WinstonToAR places a decimal point 12 digits from the right in winston,
// padding on the left with zeros so that at least one digit precedes the
// point (strings of 12 digits or fewer become "0.xxxxxxxxxxxx").
func WinstonToAR(winston string) string {
	neg := strings.HasPrefix(winston, "-")
	if neg {
		winston = winston[1:]
	}
	for len(winston) <= 12 {
		winston = "0" + winston
	}
	cut := len(winston) - 12
	out := winston[:cut] + "." + winston[cut:]
	if neg {
		out = "-" + out
	}
	return out
}

// ArToWinston converts a decimal AR string to its integer winston string
// (ar * 10^12, i.e. shift the decimal point 12 places right). This works
// directly on the decimal digits rather than through a binary float, so a
// value like "0.1" converts to exactly "100000000000" instead of picking
// up floating-point rounding noise.
func ArToWinston(ar string) string {
	neg := strings.HasPrefix(ar, "-")
	if neg {
		ar = ar[1:]
	}

	intPart, fracPart, _ := strings.Cut(ar, ".")
	if intPart == "" {
		intPart = "0"
	}
	for len(fracPart) < 12 {
		fracPart += "0"
	}
	fracPart = fracPart[:12]

	winston := strings.TrimLeft(intPart+fracPart, "0")
	if winston == "" {
		winston = "0"
	}
	if neg && winston != "0" {
		winston = "-" + winston
	}
	return winston
}

// priceFetcher calls the network's /price endpoint via a NetworkAdapter.
type priceFetcher struct {
	adapter NetworkAdapter
}

// NewPriceFetcher returns a PriceFetcher backed by adapter's /price route.
func NewPriceFetcher(adapter NetworkAdapter) PriceFetcher {
	return &priceFetcher{adapter: adapter}
}

func (p *priceFetcher) Price(dataSize int64, target string) (string, error) {
	path := fmt.Sprintf("/price/%d", dataSize)
	if target != "" {
		path += "/" + target
	}
	status, body, err := p.adapter.Get(path)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if status < 200 || status >= 300 {
		return "", &ServerRejected{Status: status, Body: string(body)}
	}
	return strings.TrimSpace(string(body)), nil
}
