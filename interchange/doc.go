// Package interchange projects tag trees onto generic document formats.
//
// The typed projection keeps every kind distinguishable so that a document
// written as JSON, YAML, CBOR or MessagePack reads back as the same tree:
//
//	{"name": "", "type": "Compound", "value": {
//	    "Health": {"type": "Float", "value": 20},
//	    "Pos":    {"type": "List", "value": {"elem": "Double", "items": [0.5, 64, 1]}}}}
//
// Integers are written as integers, finite floats in their shortest round
// trip form and non-finite floats as the strings "NaN", "Inf" and "-Inf".
//
// The plain projection maps a tree onto Go natives (int8 through int64,
// float32, float64, string, slices and map[string]any) for use as an
// expression environment. It loses kind information on the way back.
package interchange
