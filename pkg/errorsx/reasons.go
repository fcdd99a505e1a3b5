package errorsx

// ReasonCode is a short machine-readable error reason.
type ReasonCode string

const (
	ReasonUnknown ReasonCode = "unknown"

	ReasonCompletionGenerate  ReasonCode = "completion_generate"
	ReasonCompletionParse     ReasonCode = "completion_parse"
	ReasonCompletionRateLimit ReasonCode = "completion_rate_limit"
	ReasonCompletionCircuit   ReasonCode = "completion_circuit_open"

	ReasonIntentInvalid ReasonCode = "intent_invalid"

	ReasonStoreQuery    ReasonCode = "store_query"
	ReasonStoreMutation ReasonCode = "store_mutation"
	ReasonNotFound      ReasonCode = "contact_not_found"

	ReasonAuthToken       ReasonCode = "auth_invalid_token"
	ReasonAuthCredentials ReasonCode = "auth_bad_credentials"
)
