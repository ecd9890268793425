package rates

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/SvetozarP/finance-tracker/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<Cube>
		<Cube time="2024-02-09">
			<Cube currency="USD" rate="1.0772"/>
			<Cube currency="GBP" rate="0.8531"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewClient(&config.Config{RatesURL: server.URL}, log)
}

func TestGetRates(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	})

	result, err := client.GetRates()
	require.NoError(t, err)
	assert.Equal(t, 1.0, result["EUR"])
	assert.Equal(t, 1.0772, result["USD"])
	assert.Equal(t, 0.8531, result["GBP"])
}

func TestGetRates_BadStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := client.GetRates()
	assert.Error(t, err)
}

func TestGetRates_NoData(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version="1.0"?><Envelope></Envelope>`))
	})

	_, err := client.GetRates()
	assert.Error(t, err)
}

func TestConvert(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	})

	t.Run("foreign to base", func(t *testing.T) {
		amount, err := client.Convert(107.72, "USD", "EUR")
		require.NoError(t, err)
		assert.InDelta(t, 100, amount, 0.001)
	})

	t.Run("same currency is identity", func(t *testing.T) {
		amount, err := client.Convert(55, "EUR", "EUR")
		require.NoError(t, err)
		assert.Equal(t, 55.0, amount)
	})

	t.Run("unknown currency fails", func(t *testing.T) {
		_, err := client.Convert(10, "XXX", "EUR")
		assert.Error(t, err)
	})
}
