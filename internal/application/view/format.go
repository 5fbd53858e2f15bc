package view

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Placeholder valor de las columnas opcionales sin dato.
const Placeholder = "N/A"

// moneyPrinter agrupa miles con coma, como toLocaleString en en-US.
var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// toDecimal interpreta los tipos numéricos que produce el decodificador JSON.
func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case int64:
		return decimal.NewFromInt(n), true
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(n))
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}

// FormatMoney devuelve "$" + número agrupado con hasta tres decimales.
// Ej: 1000 → "$1,000", 1234.5 → "$1,234.5".
func FormatMoney(d decimal.Decimal) string {
	f := d.Round(3).InexactFloat64()
	return "$" + moneyPrinter.Sprint(number.Decimal(f, number.MaxFractionDigits(3)))
}

// stringify convierte un valor JSON en texto de celda.
func stringify(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		// 5.0 → 5, como lo muestra el navegador.
		if d, err := decimal.NewFromString(x.String()); err == nil {
			return d.String()
		}
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	default:
		data, err := json.Marshal(x)
		if err != nil {
			return fmt.Sprint(x)
		}
		return string(data)
	}
}
