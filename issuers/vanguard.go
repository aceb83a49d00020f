package issuers

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/PaesslerAG/jsonpath"

	"github.com/ledgerline/baskets"
)

// vanguard parses the JSON payload Vanguard's holdings endpoint returns for
// a fund: an array of constituents under $.fund.entity, weights expressed as
// percent strings.
type vanguard struct{}

func (vanguard) Parse(r io.Reader) (baskets.Table, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return baskets.Table{}, fmt.Errorf("cannot decode Vanguard payload: %w", err)
	}
	jval, err := jsonpath.Get("$.fund.entity", jobj)
	if err != nil {
		return baskets.Table{}, fmt.Errorf("Vanguard payload: %w", err)
	}
	entities, ok := jval.([]any)
	if !ok {
		return baskets.Table{}, fmt.Errorf("Vanguard payload: $.fund.entity is %T, not a list", jval)
	}

	columns := []baskets.Column{
		{Name: "fraction", Kind: baskets.Float},
		{Name: "asstype", Kind: baskets.String},
		{Name: "name", Kind: baskets.String},
		{Name: "ticker", Kind: baskets.String},
		{Name: "isin", Kind: baskets.String},
	}
	rows := make([][]any, 0, len(entities))
	for i, e := range entities {
		entity, ok := e.(map[string]any)
		if !ok {
			return baskets.Table{}, fmt.Errorf("Vanguard payload: entity %d is %T, not an object", i, e)
		}
		name := jstring(entity, "longName")
		weight, err := jfloat(entity, "percentWeight")
		if err != nil {
			return baskets.Table{}, fmt.Errorf("Vanguard payload: %q: %w", name, err)
		}
		asstype, err := assetType(jstring(entity, "assetType"))
		if err != nil {
			return baskets.Table{}, fmt.Errorf("Vanguard payload: %q: %w", name, err)
		}
		rows = append(rows, []any{
			weight / 100,
			string(asstype),
			name,
			jstring(entity, "ticker"),
			jstring(entity, "isin"),
		})
	}
	return baskets.NewTable(columns, rows)
}

func jstring(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

// jfloat reads a number that Vanguard serializes either as a JSON number or
// as a string.
func jfloat(obj map[string]any, key string) (float64, error) {
	switch v := obj[key].(type) {
	case float64:
		return v, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, fmt.Errorf("bad %s %q: %w", key, v, err)
		}
		return f, nil
	}
	return 0, fmt.Errorf("missing %s", key)
}
