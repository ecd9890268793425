package rates

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/SvetozarP/finance-tracker/internal/config"
	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
)

// Client fetches daily reference exchange rates from the ECB feed.
// Rates are quoted against EUR.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.RatesURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetch downloads the daily rates XML document
func (c *Client) fetch() ([]byte, error) {
	resp, err := c.client.Get(c.url)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("Rates XML response: %d bytes", len(body))
	return body, nil
}

// parseRates extracts currency rates from the ECB Cube elements
func (c *Client) parseRates(rawBody []byte) (map[string]float64, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	cubes := doc.FindElements("//Cube[@currency]")
	if len(cubes) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	result := map[string]float64{"EUR": 1.0}
	for _, cube := range cubes {
		currency := cube.SelectAttrValue("currency", "")
		rateText := cube.SelectAttrValue("rate", "")
		rate, err := strconv.ParseFloat(rateText, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		result[currency] = rate
	}
	return result, nil
}

// GetRates retrieves the current EUR-based reference rates
func (c *Client) GetRates() (map[string]float64, error) {
	body, err := c.fetch()
	if err != nil {
		return nil, err
	}

	result, err := c.parseRates(body)
	if err != nil {
		return nil, err
	}

	c.log.Infof("Retrieved %d exchange rates", len(result))
	return result, nil
}

// Convert translates an amount between two currencies using the
// current reference rates.
func (c *Client) Convert(amount float64, from, to string) (float64, error) {
	if from == to {
		return amount, nil
	}
	ratesByCurrency, err := c.GetRates()
	if err != nil {
		return 0, err
	}
	fromRate, ok := ratesByCurrency[from]
	if !ok || fromRate == 0 {
		return 0, fmt.Errorf("unknown currency: %s", from)
	}
	toRate, ok := ratesByCurrency[to]
	if !ok {
		return 0, fmt.Errorf("unknown currency: %s", to)
	}
	return amount / fromRate * toRate, nil
}
