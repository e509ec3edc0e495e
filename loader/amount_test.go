package loader

import (
	"testing"

	"github.com/alecthomas/assert/v2"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantNumber string
		wantName   string
		wantPrefix bool
		wantSpace  bool
		wantErr    bool
	}{
		{name: "prefix symbol", input: "$100.00", wantNumber: "100", wantName: "$", wantPrefix: true},
		{name: "prefix negative", input: "$-1,234.56", wantNumber: "-1234.56", wantName: "$", wantPrefix: true},
		{name: "suffix commodity", input: "123.45 USD", wantNumber: "123.45", wantName: "USD", wantSpace: true},
		{name: "suffix negative", input: "-50 USD", wantNumber: "-50", wantName: "USD", wantSpace: true},
		{name: "thousands separators", input: "1,000,000.00 USD", wantNumber: "1000000", wantName: "USD", wantSpace: true},
		{name: "quoted commodity", input: `10 "My Fund"`, wantNumber: "10", wantName: "My Fund", wantSpace: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "hello world extra", wantErr: true},
		{name: "unterminated lot price", input: "10 GOOG {700.00 USD", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantNumber, got.Number.String())
			assert.Equal(t, tt.wantName, got.Commodity.Name)
			assert.Equal(t, tt.wantPrefix, got.Commodity.Prefix)
			assert.Equal(t, tt.wantSpace, got.Commodity.Space)
		})
	}
}

func TestParseAmountLotPrice(t *testing.T) {
	got, err := ParseAmount("10 GOOG {700.00 USD}")
	assert.NoError(t, err)
	assert.Equal(t, "10", got.Number.String())
	assert.Equal(t, "GOOG", got.Commodity.Name)

	price := got.Commodity.Price
	assert.NotZero(t, price)
	assert.Equal(t, "700", price.Number.String())
	assert.Equal(t, "USD", price.Commodity.Name)
}
