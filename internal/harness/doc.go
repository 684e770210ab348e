// Package harness runs declarative query scenarios end to end.
//
// A scenario seeds a fresh in-memory store with inspection points, parses
// and evaluates one query against it, and checks the outcome: the selected
// point ids, the rendered coordinate lines, or the failure message.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: and-intersection
//	description: "Intersection keeps only the points inside every operand."
//	points:
//	  - {id: 1, group: 1, x: 1, y: 1}
//	  - {id: 2, group: 1, x: 5, y: 5}
//	  - {id: 3, group: 1, x: 9, y: 9}
//	query: |-
//	  {"query": {"operator_and": [
//	    {"operator_crop": {"region": {"p_min": {"x": 0, "y": 0}, "p_max": {"x": 6, "y": 6}}}},
//	    {"operator_crop": {"region": {"p_min": {"x": 4, "y": 4}, "p_max": {"x": 10, "y": 10}}}}
//	  ]}}
//	expect:
//	  ids: [2]
//	  lines:
//	    - "5 5"
//
// # Expectations
//
// A scenario checks whichever expectations it declares; at least one is
// required:
//
//   - ids: the selected point ids, ascending. An explicit empty list
//     asserts the query selects nothing.
//   - lines: the rendered output lines, in output order (ascending y,
//     then x). An explicit empty list asserts empty output.
//   - error: a substring of the failure message. Mutually exclusive with
//     ids and lines.
//
// # Determinism
//
// Every run opens its own in-memory SQLite database, so scenarios cannot
// observe each other's state, and operands evaluate sequentially. Repeated
// runs of the same scenario produce identical results, which keeps golden
// file comparison stable.
//
// # Usage
//
// Load and run a scenario:
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/and-intersection.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, msg := range result.Errors {
//	        log.Println(msg)
//	    }
//	}
package harness
