package entities

// ResolveCredential exports resolveCredential for testing.
var ResolveCredential = resolveCredential //nolint:gochecknoglobals // test export

// Validate exports validate for testing.
var Validate = validate //nolint:gochecknoglobals // test export

// ParseRequirementLine exports parseRequirementLine for testing.
var ParseRequirementLine = parseRequirementLine //nolint:gochecknoglobals // test export
