// Package query defines the abstract syntax tree for region queries and the
// parser that builds it from JSON text.
//
// A query is a boolean expression tree. Leaves are crop operations that
// select inspection points inside an axis-aligned region, optionally
// narrowed by category, group membership, and the proper-group rule.
// Interior nodes combine operand results: and intersects, or unions.
//
// WIRE FORMAT:
//
// The accepted document has exactly one top-level "query" key holding one
// operation object. An operation object has exactly one operator key:
//
//	{"query": {"operator_crop": {
//	    "region": {"p_min": {"x": 0, "y": 0}, "p_max": {"x": 10, "y": 10}},
//	    "category": 3,
//	    "one_of_groups": [1, 2],
//	    "proper": true}}}
//
//	{"query": {"operator_and": [ <operation>, <operation>, ... ]}}
//	{"query": {"operator_or":  [ <operation>, <operation>, ... ]}}
//
// Operator arrays may be empty; both combinators evaluate an empty operand
// list to the empty result set.
//
// PARSE, DON'T VALIDATE:
//
// Parse either returns a fully-formed tree or a *ParseError naming the JSON
// path that was rejected. Once a Node exists, every region is complete and
// every scalar has its final type; downstream stages perform no further
// shape checking.
//
// SEALED INTERFACE:
//
// Node is sealed with a marker method, so backends can type-switch
// exhaustively over *Crop, *And and *Or without a default arm for unknown
// implementations.
package query
