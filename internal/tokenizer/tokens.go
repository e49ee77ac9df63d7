// Package tokenizer tokenizes HTTP/1.1 start lines and field lines using
// Shape's tokenizer framework.
package tokenizer

// Token type constants for HTTP/1.1 lines.
const (
	TokenVersion = "Version" // HTTP/1.0, HTTP/1.1
	TokenWord    = "Word"    // method, request-target, status code, reason word

	TokenFieldName  = "FieldName"  // field-name before colon
	TokenFieldColon = "FieldColon" // :
	TokenFieldValue = "FieldValue" // field-value after colon

	TokenSP   = "SP"   // Space separator in start-line
	TokenCRLF = "CRLF" // Line ending \r\n or \n
)
