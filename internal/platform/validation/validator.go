package validation

// Validator validates a struct and returns its field errors keyed by json name.
type Validator interface {
	ValidateStruct(s any) map[string]string
}
