// Package mock provides test doubles for the ai package interfaces.
//
// The mocks use function fields for behavior injection: set the
// corresponding Func field to override the default deterministic
// behavior. Call counts are tracked for assertion in tests.
package mock
