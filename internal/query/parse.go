package query

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Kangyi02/DaoAI-assessment/internal/inspection"
)

// Operator keys recognized inside an operation object.
const (
	opCrop = "operator_crop"
	opAnd  = "operator_and"
	opOr   = "operator_or"
)

// Parse decodes query text into its syntax tree.
//
// The document must hold exactly one top-level "query" key wrapping exactly
// one operation object (see the package documentation for the wire format).
// Unknown keys, missing required keys, wrong scalar types and trailing data
// are all rejected with a *ParseError carrying the JSON path. On success the
// returned tree needs no further validation.
func Parse(data []byte) (Node, error) {
	var doc struct {
		Query json.RawMessage `json:"query"`
	}
	if err := decodeStrict(data, &doc); err != nil {
		return nil, parseErrorf("query", "invalid query document: %v", err)
	}
	if len(doc.Query) == 0 {
		return nil, parseErrorf("query", "missing required key %q", "query")
	}
	return parseOperation(doc.Query, "query")
}

// ParseString is Parse for query text already held as a string.
func ParseString(text string) (Node, error) {
	return Parse([]byte(text))
}

// parseOperation decodes one operation object: a JSON object carrying
// exactly one operator key.
func parseOperation(raw json.RawMessage, path string) (Node, error) {
	var op struct {
		Crop *json.RawMessage   `json:"operator_crop"`
		And  *[]json.RawMessage `json:"operator_and"`
		Or   *[]json.RawMessage `json:"operator_or"`
	}
	if err := decodeStrict(raw, &op); err != nil {
		return nil, parseErrorf(path, "invalid operation object: %v", err)
	}

	present := 0
	for _, ok := range []bool{op.Crop != nil, op.And != nil, op.Or != nil} {
		if ok {
			present++
		}
	}
	switch {
	case present == 0:
		return nil, parseErrorf(path, "operation object needs exactly one of %q, %q or %q", opCrop, opAnd, opOr)
	case present > 1:
		return nil, parseErrorf(path, "operation object holds %d operators, want exactly one", present)
	}

	switch {
	case op.Crop != nil:
		return parseCrop(*op.Crop, path+"."+opCrop)
	case op.And != nil:
		operands, err := parseOperands(*op.And, path+"."+opAnd)
		if err != nil {
			return nil, err
		}
		return &And{Operands: operands}, nil
	default:
		operands, err := parseOperands(*op.Or, path+"."+opOr)
		if err != nil {
			return nil, err
		}
		return &Or{Operands: operands}, nil
	}
}

func parseOperands(raws []json.RawMessage, path string) ([]Node, error) {
	operands := make([]Node, 0, len(raws))
	for i, raw := range raws {
		child, err := parseOperation(raw, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		operands = append(operands, child)
	}
	return operands, nil
}

func parseCrop(raw json.RawMessage, path string) (*Crop, error) {
	var doc struct {
		Region      *regionDoc     `json:"region"`
		Category    *json.Number   `json:"category"`
		OneOfGroups *[]json.Number `json:"one_of_groups"`
		Proper      *bool          `json:"proper"`
	}
	if err := decodeStrict(raw, &doc); err != nil {
		return nil, parseErrorf(path, "invalid crop object: %v", err)
	}
	if doc.Region == nil {
		return nil, parseErrorf(path, "missing required key %q", "region")
	}

	region, err := regionValue(doc.Region, path+".region")
	if err != nil {
		return nil, err
	}
	crop := &Crop{Region: region}

	if doc.Category != nil {
		category, err := strconv.Atoi(doc.Category.String())
		if err != nil {
			return nil, parseErrorf(path+".category", "expected an integer, got %s", *doc.Category)
		}
		crop.Category = &category
	}
	if doc.OneOfGroups != nil {
		// Present but empty stays distinguishable from absent: both mean no
		// group constraint, and parsed queries carry an empty non-nil slice.
		groups := make([]int64, 0, len(*doc.OneOfGroups))
		for i, num := range *doc.OneOfGroups {
			group, err := strconv.ParseInt(num.String(), 10, 64)
			if err != nil {
				return nil, parseErrorf(fmt.Sprintf("%s.one_of_groups[%d]", path, i), "expected an integer, got %s", num)
			}
			groups = append(groups, group)
		}
		crop.Groups = groups
	}
	if doc.Proper != nil {
		crop.Proper = *doc.Proper
	}
	return crop, nil
}

type regionDoc struct {
	PMin *cornerDoc `json:"p_min"`
	PMax *cornerDoc `json:"p_max"`
}

type cornerDoc struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

func regionValue(doc *regionDoc, path string) (inspection.Region, error) {
	minX, minY, err := cornerValue(doc.PMin, path, "p_min")
	if err != nil {
		return inspection.Region{}, err
	}
	maxX, maxY, err := cornerValue(doc.PMax, path, "p_max")
	if err != nil {
		return inspection.Region{}, err
	}
	return inspection.Region{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}, nil
}

func cornerValue(doc *cornerDoc, path, key string) (x, y float64, err error) {
	if doc == nil {
		return 0, 0, parseErrorf(path, "missing required key %q", key)
	}
	if doc.X == nil {
		return 0, 0, parseErrorf(path+"."+key, "missing required key %q", "x")
	}
	if doc.Y == nil {
		return 0, 0, parseErrorf(path+"."+key, "missing required key %q", "y")
	}
	return *doc.X, *doc.Y, nil
}

// decodeStrict unmarshals exactly one JSON value into v, rejecting unknown
// object keys at any depth and trailing content after the value.
func decodeStrict(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if dec.More() {
		return fmt.Errorf("trailing data after the document")
	}
	return nil
}
