// Package battletest provides literal scenario fixtures for exercising
// the world and protocol packages without a live server connection,
// grounded on the teacher's createTestConfig() literal-fixture style
// (game/engine/engine_test.go). Each fixture here mirrors one of
// spec.md section 8's end-to-end scenarios.
package battletest
