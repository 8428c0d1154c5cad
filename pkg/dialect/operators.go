package dialect

// BaseOperators is the operator set every dialect starts from.
// The flat tokenizer uses it to classify comparison symbols and word
// operators as Operator.
var BaseOperators = []string{
	"=", "<", ">", "<=", ">=", "<>", "!=",
	"IN",
}

// PatternOperators are the pattern matching operators most dialects add on top
// of the base set.
var PatternOperators = []string{"LIKE"}
