// export_test.go exports private helpers for white-box testing.
package naming

var LineOf = lineOf
