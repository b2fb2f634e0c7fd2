package apiroute

// Test-only exports for internal functions.
var (
	ToOpenAPIPath = toOpenAPIPath
	PathParams    = pathParams
)
