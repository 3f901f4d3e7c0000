// Package harness provides scenario-based conformance testing for tagmerge.
//
// A scenario names two input documents, a key set, and either the merged
// document the engine must produce or the error kind it must fail with. The
// harness builds the plan, executes it, and compares the result structurally
// against the expectation.
//
// # Scenario Format
//
// Scenarios are defined in YAML files. Documents are inline JSON text:
//
//	name: conflict_right_wins
//	description: "Conflicting field takes the right value"
//	keys: [id]
//	policy: right_wins        # optional
//	normalize_keys: false     # optional
//	left: |
//	  [{"id": 1, "v": "a"}]
//	right: |
//	  [{"id": 1, "v": "b"}]
//	expect: |
//	  [{"id": 1, "v": "b"}]
//
// A failing scenario replaces expect with the error kind:
//
//	expect_error: MALFORMED_INPUT
//
// # Golden Files
//
// Plan text and merged output are deterministic, so they can be snapshotted.
// RunWithGolden compares both against testdata/golden/{name}.plan.golden and
// testdata/golden/{name}.merged.golden. To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// # Usage
//
//	scenario, err := harness.LoadScenario("testdata/scenarios/conflict.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	result, err := harness.Run(scenario)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Pass {
//	    for _, e := range result.Errors {
//	        log.Println(e)
//	    }
//	}
package harness
