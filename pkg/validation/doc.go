// Package validation checks card documents in two passes: a structural pass
// against OpenAPI component schemas (kin-openapi) and the element pass
// (parse diagnostics plus each element's Validate). Issues from both passes
// are reported with JSON pointer paths.
package validation
