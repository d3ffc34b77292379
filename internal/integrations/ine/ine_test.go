package ine

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
)

func testClient() *Client {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return &Client{log: log}
}

func TestParseXMLResponse(t *testing.T) {
	body := []byte(`<?xml version="1.0" encoding="utf-8"?>
		<Series>
			<Serie>
				<Obs><Periodo>2025-04</Periodo><Valor>112.35</Valor></Obs>
				<Obs><Periodo>2025-03</Periodo><Valor>111.90</Valor></Obs>
			</Serie>
		</Series>`)

	index, err := testClient().parseXMLResponse(body)
	if err != nil {
		t.Fatalf("parseXMLResponse error: %v", err)
	}
	if index.Period != "2025-04" {
		t.Errorf("Period = %s, want 2025-04", index.Period)
	}
	if index.Value != 112.35 {
		t.Errorf("Value = %v, want 112.35", index.Value)
	}
}

func TestParseXMLResponseErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not xml", "{}"},
		{"no observations", `<Series><Serie></Serie></Series>`},
		{"missing value", `<Series><Serie><Obs><Periodo>2025-04</Periodo></Obs></Serie></Series>`},
		{"unparsable value", `<Series><Serie><Obs><Periodo>2025-04</Periodo><Valor>n/a</Valor></Obs></Serie></Series>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := testClient().parseXMLResponse([]byte(tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
