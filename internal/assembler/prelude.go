package assembler

// PreludeNamespace is the namespace of the standard library of shapes and
// traits that every model can reference without a use statement.
const PreludeNamespace = "smithy.api"

// preludeShapes are the simple shapes defined by the prelude.
var preludeShapes = map[string]struct{}{
	"Blob":             {},
	"Boolean":          {},
	"String":           {},
	"Byte":             {},
	"Short":            {},
	"Integer":          {},
	"Long":             {},
	"Float":            {},
	"Double":           {},
	"BigInteger":       {},
	"BigDecimal":       {},
	"Timestamp":        {},
	"Document":         {},
	"Unit":             {},
	"PrimitiveBoolean": {},
	"PrimitiveByte":    {},
	"PrimitiveShort":   {},
	"PrimitiveInteger": {},
	"PrimitiveLong":    {},
	"PrimitiveFloat":   {},
	"PrimitiveDouble":  {},
}

// preludeTraits are the trait shapes defined by the prelude. Relative
// trait names fall back to these when nothing in the current namespace or
// the file's use statements matches.
var preludeTraits = map[string]struct{}{
	"addedDefault":          {},
	"auth":                  {},
	"authDefinition":        {},
	"clientOptional":        {},
	"cors":                  {},
	"default":               {},
	"deprecated":            {},
	"documentation":         {},
	"endpoint":              {},
	"enumValue":             {},
	"error":                 {},
	"examples":              {},
	"externalDocumentation": {},
	"http":                  {},
	"httpApiKeyAuth":        {},
	"httpBasicAuth":         {},
	"httpBearerAuth":        {},
	"httpChecksumRequired":  {},
	"httpError":             {},
	"httpHeader":            {},
	"httpLabel":             {},
	"httpPayload":           {},
	"httpPrefixHeaders":     {},
	"httpQuery":             {},
	"httpQueryParams":       {},
	"httpResponseCode":      {},
	"idempotencyToken":      {},
	"idempotent":            {},
	"input":                 {},
	"internal":              {},
	"jsonName":              {},
	"length":                {},
	"mediaType":             {},
	"mixin":                 {},
	"noReplace":             {},
	"output":                {},
	"paginated":             {},
	"pattern":               {},
	"private":               {},
	"protocolDefinition":    {},
	"range":                 {},
	"readonly":              {},
	"recommended":           {},
	"references":            {},
	"required":              {},
	"requiresLength":        {},
	"resourceIdentifier":    {},
	"retryable":             {},
	"sensitive":             {},
	"since":                 {},
	"sparse":                {},
	"streaming":             {},
	"suppress":              {},
	"tags":                  {},
	"timestampFormat":       {},
	"title":                 {},
	"trait":                 {},
	"unitType":              {},
	"uniqueItems":           {},
	"unstable":              {},
	"xmlAttribute":          {},
	"xmlFlattened":          {},
	"xmlName":               {},
	"xmlNamespace":          {},
}

func isPreludeShape(name string) bool {
	_, ok := preludeShapes[name]
	return ok
}

func isPreludeTrait(name string) bool {
	_, ok := preludeTraits[name]
	return ok
}
