package ine

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/beevik/etree"
	"github.com/obratrack/obratrack/internal/config"
	"github.com/sirupsen/logrus"
)

// CostIndex is one observation of the official construction cost index
type CostIndex struct {
	Period string  `json:"period"` // YYYY-MM
	Value  float64 `json:"value"`
}

// Client fetches the construction cost index from the statistics office
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger
}

// NewClient initializes a new cost index client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.CostIndexURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

// fetch retrieves the raw XML series from the service
func (c *Client) fetch() ([]byte, error) {
	req, err := http.NewRequest("GET", c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/xml")

	resp, err := c.client.Do(req)
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

	c.log.Debugf("cost index XML response: %s", string(body))
	return body, nil
}

// parseXMLResponse extracts the most recent observation from the series
func (c *Client) parseXMLResponse(rawBody []byte) (CostIndex, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return CostIndex{}, fmt.Errorf("failed to parse XML: %v", err)
	}

	observations := doc.FindElements("//Serie/Obs")
	if len(observations) == 0 {
		return CostIndex{}, fmt.Errorf("no observations found in XML")
	}

	// Observations come newest first
	latest := observations[0]
	valueElement := latest.FindElement("./Valor")
	periodElement := latest.FindElement("./Periodo")
	if valueElement == nil || periodElement == nil {
		return CostIndex{}, fmt.Errorf("observation is missing value or period")
	}

	var value float64
	if _, err := fmt.Sscanf(valueElement.Text(), "%f", &value); err != nil {
		return CostIndex{}, fmt.Errorf("failed to parse index value: %v", err)
	}

	return CostIndex{Period: periodElement.Text(), Value: value}, nil
}

// GetCostIndex retrieves the latest official construction cost index
func (c *Client) GetCostIndex() (CostIndex, error) {
	body, err := c.fetch()
	if err != nil {
		return CostIndex{}, err
	}

	index, err := c.parseXMLResponse(body)
	if err != nil {
		return CostIndex{}, err
	}

	c.log.Infof("Retrieved cost index %s: %.2f", index.Period, index.Value)
	return index, nil
}
